package httpserver

import (
	"net/http"

	cartsvc "storefront-backend/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type createCartRequest struct {
	UserID string              `json:"userId" binding:"required"`
	Items  []cartsvc.ItemInput `json:"items"`
}

func createCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cart, err := svc.Create(c.Request.Context(), req.UserID, req.Items)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func getUserCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.GetByUser(c.Request.Context(), c.Param("userId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartsvc.ItemInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), c.Param("userId"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cart, err := svc.UpdateQuantity(c.Request.Context(), c.Param("userId"), c.Param("itemId"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func getCartByPreferenceHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.GetByPaymentIntent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

type patchCollectionRequest struct {
	CartID          string  `json:"cartId" binding:"required"`
	CollectionID    *string `json:"collectionId,omitempty"`
	MerchantOrderID *string `json:"merchantOrderId,omitempty"`
}

// patchCollectionHandler records the provider's redirect parameters after
// checkout; the cart may already be archived by the webhook at that point.
func patchCollectionHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patchCollectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.PatchCollection(c.Request.Context(), req.CartID, req.CollectionID, req.MerchantOrderID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func deleteCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
