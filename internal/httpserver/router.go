package httpserver

import (
	"context"
	"log"
	"time"

	"storefront-backend/internal/domain"
	cartsvc "storefront-backend/internal/service/cart"
	paymentsvc "storefront-backend/internal/service/payment"
	shippingsvc "storefront-backend/internal/service/shipping"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartService is the cart surface the handlers depend on.
type CartService interface {
	Create(ctx context.Context, userID string, items []cartsvc.ItemInput) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, in cartsvc.ItemInput) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Delete(ctx context.Context, cartID string) error
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Cart, error)
	PatchCollection(ctx context.Context, cartID string, collectionID, merchantOrderID *string) error
}

type OrderService interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type ShippingService interface {
	SaveOrUpdate(ctx context.Context, in shippingsvc.SaveInput) (*domain.Shipping, error)
	GetByCart(ctx context.Context, cartID string) (*domain.Shipping, error)
}

type ArchiveService interface {
	GetByCart(ctx context.Context, cartID string) (*domain.ArchivedCart, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ArchivedCart, error)
}

type PaymentService interface {
	CreatePreference(ctx context.Context, cartID string) (*paymentsvc.PreferenceResult, error)
	HandleWebhook(ctx context.Context, in paymentsvc.WebhookInput) (*domain.Order, error)
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListVariantsByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error)
}

// Deps carries the services the router wires handlers to.
type Deps struct {
	CartSvc     CartService
	OrderSvc    OrderService
	ShippingSvc ShippingService
	ArchiveSvc  ArchiveService
	PaymentSvc  PaymentService
	ProductSvc  ProductService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api/v1")

	api.GET("/products", listProductsHandler(deps.ProductSvc))
	api.GET("/products/:id", getProductHandler(deps.ProductSvc))
	api.GET("/products/:id/variants", listVariantsHandler(deps.ProductSvc))

	api.POST("/carts", createCartHandler(deps.CartSvc))
	api.GET("/carts/:id", getCartHandler(deps.CartSvc))
	api.DELETE("/carts/:id", deleteCartHandler(deps.CartSvc))
	api.DELETE("/carts/:id/items/:itemId", removeCartItemHandler(deps.CartSvc))
	api.GET("/users/:userId/cart", getUserCartHandler(deps.CartSvc))
	api.POST("/users/:userId/cart/items", addCartItemHandler(deps.CartSvc))
	api.PATCH("/users/:userId/cart/items/:itemId", updateCartItemHandler(deps.CartSvc))

	api.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	api.GET("/users/:userId/orders", listUserOrdersHandler(deps.OrderSvc))

	api.POST("/shipping", saveShippingHandler(deps.ShippingSvc))
	api.GET("/carts/:id/shipping", getCartShippingHandler(deps.ShippingSvc))

	api.GET("/carts/:id/archive", getArchivedCartHandler(deps.ArchiveSvc))
	api.GET("/users/:userId/archived-carts", listArchivedCartsHandler(deps.ArchiveSvc))

	api.POST("/payments/preference", createPreferenceHandler(deps.PaymentSvc))
	api.GET("/payments/preference/:id/cart", getCartByPreferenceHandler(deps.CartSvc))
	api.PATCH("/payments/collection", patchCollectionHandler(deps.CartSvc))
	api.POST("/payments/webhook", webhookHandler(deps.PaymentSvc))

	return router
}
