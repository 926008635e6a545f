package router

import (
	"github.com/gin-gonic/gin"

	"billmint/internal/config"
	"billmint/internal/handler"
	"billmint/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	saleH *handler.SaleHandler,
	paymentH *handler.PaymentHandler,
	purchaseH *handler.PurchaseHandler,
	orderH *handler.PurchaseOrderHandler,
	productH *handler.ProductHandler,
	customerH *handler.CustomerHandler,
	vendorH *handler.VendorHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Billing
	sales := v1.Group("/sales")
	sales.POST("", saleH.Create)
	sales.GET("", saleH.List)
	sales.GET("/:id", saleH.GetByID)
	sales.PUT("/:id", saleH.Update)
	sales.DELETE("/:id", saleH.Delete)
	sales.GET("/:id/payments", paymentH.ListBySale)

	// Payment ledger
	payments := v1.Group("/payments")
	payments.POST("", paymentH.Add)
	payments.DELETE("/:id", paymentH.Delete)

	// Inbound stock
	purchases := v1.Group("/purchases")
	purchases.POST("", purchaseH.Create)
	purchases.GET("", purchaseH.List)
	purchases.GET("/:id", purchaseH.GetByID)
	purchases.PUT("/:id", purchaseH.Update)
	purchases.DELETE("/:id", purchaseH.Delete)

	// Purchase orders
	orders := v1.Group("/purchase-orders")
	orders.POST("", orderH.Create)
	orders.GET("", orderH.List)
	orders.GET("/:id", orderH.GetByID)
	orders.PUT("/:id", orderH.Update)
	orders.DELETE("/:id", orderH.Delete)

	// Master data
	products := v1.Group("/products")
	products.POST("", productH.Create)
	products.GET("", productH.List)
	products.GET("/:id", productH.GetByID)
	products.PUT("/:id", productH.Update)
	products.DELETE("/:id", productH.Delete)

	customers := v1.Group("/customers")
	customers.POST("", customerH.Create)
	customers.GET("", customerH.List)
	customers.GET("/:id", customerH.GetByID)
	customers.PUT("/:id", customerH.Update)
	customers.DELETE("/:id", customerH.Delete)
	customers.GET("/:id/ledger", paymentH.CustomerLedger)

	vendors := v1.Group("/vendors")
	vendors.POST("", vendorH.Create)
	vendors.GET("", vendorH.List)
	vendors.GET("/:id", vendorH.GetByID)
	vendors.PUT("/:id", vendorH.Update)
	vendors.DELETE("/:id", vendorH.Delete)

	return r
}
