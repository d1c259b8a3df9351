package httpserver

import (
	"net/http"

	paymentsvc "storefront-backend/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type preferenceRequest struct {
	CartID string `json:"cartId" binding:"required"`
}

func createPreferenceHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req preferenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := svc.CreatePreference(c.Request.Context(), req.CartID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// webhookHandler receives provider notifications. The signature header is
// validated before any processing; a non-approved notification still
// answers 200 so the provider stops redelivering it.
func webhookHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var notification paymentsvc.Notification
		if err := c.ShouldBindJSON(&notification); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.HandleWebhook(c.Request.Context(), paymentsvc.WebhookInput{
			Notification: notification,
			Signature:    c.GetHeader("x-signature"),
			RequestID:    c.GetHeader("x-request-id"),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if order == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "processed", "orderId": order.ID})
	}
}
