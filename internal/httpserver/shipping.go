package httpserver

import (
	"net/http"

	shippingsvc "storefront-backend/internal/service/shipping"
	"github.com/gin-gonic/gin"
)

func saveShippingHandler(svc ShippingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shippingsvc.SaveInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		shipping, err := svc.SaveOrUpdate(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shipping)
	}
}

func getCartShippingHandler(svc ShippingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shipping, err := svc.GetByCart(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shipping)
	}
}
