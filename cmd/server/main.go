package main

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"billmint/internal/config"
	"billmint/internal/handler"
	"billmint/internal/repository/postgres"
	"billmint/internal/router"
	"billmint/internal/service"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogger(&cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	uow := postgres.NewUnitOfWork(db)
	productRepo := postgres.NewProductRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	vendorRepo := postgres.NewVendorRepo(db)
	saleRepo := postgres.NewSaleRepo(db)
	paymentRepo := postgres.NewSalePaymentRepo(db)
	purchaseRepo := postgres.NewPurchaseRepo(db)
	orderRepo := postgres.NewPurchaseOrderRepo(db)

	// Initialize services
	saleSvc := service.NewSaleService(uow, saleRepo, cfg.Sales)
	paymentSvc := service.NewPaymentService(uow, paymentRepo)
	purchaseSvc := service.NewPurchaseService(uow, purchaseRepo)
	orderSvc := service.NewPurchaseOrderService(uow, orderRepo)
	productSvc := service.NewProductService(productRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	vendorSvc := service.NewVendorService(vendorRepo)

	// Initialize handlers
	saleH := handler.NewSaleHandler(saleSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	purchaseH := handler.NewPurchaseHandler(purchaseSvc)
	orderH := handler.NewPurchaseOrderHandler(orderSvc)
	productH := handler.NewProductHandler(productSvc)
	customerH := handler.NewCustomerHandler(customerSvc)
	vendorH := handler.NewVendorHandler(vendorSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, saleH, paymentH, purchaseH, orderH, productH, customerH, vendorH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logrus.WithField("addr", cfg.Server.Port).Info("server starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func setupLogger(cfg *config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
