package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-backend/internal/config"
	"storefront-backend/internal/db"
	"storefront-backend/internal/httpserver"
	"storefront-backend/internal/payment"
	archiverepo "storefront-backend/internal/repository/archive"
	cartrepo "storefront-backend/internal/repository/cart"
	checkoutrepo "storefront-backend/internal/repository/checkout"
	customerrepo "storefront-backend/internal/repository/customer"
	orderrepo "storefront-backend/internal/repository/order"
	productrepo "storefront-backend/internal/repository/product"
	shippingrepo "storefront-backend/internal/repository/shipping"
	archivesvc "storefront-backend/internal/service/archive"
	cartsvc "storefront-backend/internal/service/cart"
	ordersvc "storefront-backend/internal/service/order"
	paymentsvc "storefront-backend/internal/service/payment"
	productsvc "storefront-backend/internal/service/product"
	shippingsvc "storefront-backend/internal/service/shipping"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	shippingRepo := shippingrepo.NewPostgres(dbpool)
	archiveRepo := archiverepo.NewPostgres(dbpool)
	checkoutRepo := checkoutrepo.NewPostgres(dbpool, logger)

	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo, archiveRepo)
	archiveService := archivesvc.New(archiveRepo)
	orderService := ordersvc.New(orderRepo, customerRepo, checkoutRepo, archiveService)
	shippingService := shippingsvc.New(shippingRepo)

	providerClient := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentAccessToken)
	paymentService := paymentsvc.New(providerClient, cartService, orderService, paymentsvc.Options{
		WebhookSecret:   cfg.PaymentWebhookSecret,
		NotificationURL: cfg.PaymentNotificationURL,
		CallbackURL:     cfg.PaymentCallbackURL,
	}, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		OrderSvc:    orderService,
		ShippingSvc: shippingService,
		ArchiveSvc:  archiveService,
		PaymentSvc:  paymentService,
		ProductSvc:  productService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
