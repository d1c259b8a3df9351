package httpserver

import (
	"errors"
	"net/http"

	"storefront-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain error classes onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
