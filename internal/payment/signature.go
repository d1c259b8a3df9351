package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"storefront-backend/internal/domain"
)

// VerifySignature checks the provider's x-signature header against the
// shared webhook secret. The header carries comma-separated `ts=` and `v1=`
// parts; v1 is the hex HMAC-SHA256 of the manifest
// "id:{dataID};request-id:{requestID};ts:{ts};".
func VerifySignature(secret, signatureHeader, requestID, dataID string) error {
	var ts, v1 string
	for _, part := range strings.Split(signatureHeader, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "ts":
			ts = strings.TrimSpace(value)
		case "v1":
			v1 = strings.TrimSpace(value)
		}
	}
	if ts == "" || v1 == "" {
		return domain.Unauthorized("Invalid webhook signature")
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return domain.Unauthorized("Invalid webhook signature")
	}
	return nil
}
