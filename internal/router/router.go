package router

import (
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/config"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/handler"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/infra"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/middleware"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smsCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	cartRepo := repository.NewCartRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(categoryRepo, brandRepo, branchRepo, userRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, brandRepo)
	notifSvc := service.NewNotificationService(notifRepo, branchRepo, dispatcher)
	inventorySvc := service.NewInventoryService(inventoryRepo, notifSvc)
	supplierSvc := service.NewSupplierService(supplierRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, supplierRepo, branchRepo, productRepo, inventorySvc, notifSvc)
	customerSvc := service.NewCustomerService(customerRepo)
	sessionSvc := service.NewSessionService(sessionRepo, branchRepo)
	saleSvc := service.NewSaleService(saleRepo, sessionSvc, customerRepo, productRepo, inventorySvc, notifSvc,
		cfg.StoreName, cfg.ReceiptStoragePath)
	cartSvc := service.NewCartService(cartRepo, sessionSvc, sessionRepo, productRepo, saleSvc)
	reportSvc := service.NewReportService(reportRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	productsH := handler.NewProductsHandler(productSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc, supplierSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	sessionsH := handler.NewSessionsHandler(sessionSvc)
	cartH := handler.NewCartHandler(cartSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	notificationsH := handler.NewNotificationsHandler(notifSvc)
	reportsH := handler.NewReportsHandler(reportSvc, cfg.ReportStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, smsCB))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/v1/auth")
	auth.Use(middleware.LoginRateLimiter())
	{
		auth.POST("/login", authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	v1 := r.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		admin := v1.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/users", authH.CreateUser)
			admin.GET("/users", authH.ListUsers)
			admin.PUT("/users/:id", authH.UpdateUser)
			admin.DELETE("/users/:id", authH.DeactivateUser)
			admin.POST("/users/:id/reactivate", authH.ReactivateUser)

			admin.POST("/categories", catalogH.CreateCategory)
			admin.PUT("/categories/:id", catalogH.UpdateCategory)
			admin.DELETE("/categories/:id", catalogH.DeleteCategory)
			admin.POST("/brands", catalogH.CreateBrand)
			admin.PUT("/brands/:id", catalogH.UpdateBrand)
			admin.DELETE("/brands/:id", catalogH.DeleteBrand)
			admin.POST("/branches", catalogH.CreateBranch)
			admin.PUT("/branches/:id", catalogH.UpdateBranch)
			admin.DELETE("/branches/:id", catalogH.DeactivateBranch)

			admin.POST("/products/phones", productsH.CreatePhone)
			admin.POST("/products/accessories", productsH.CreateAccessory)
			admin.PUT("/products/:id", productsH.UpdateProduct)
			admin.DELETE("/products/:id", productsH.DeactivateProduct)
			admin.POST("/products/:id/reactivate", productsH.ReactivateProduct)

			admin.POST("/suppliers", purchasesH.CreateSupplier)
			admin.PUT("/suppliers/:id", purchasesH.UpdateSupplier)
			admin.DELETE("/suppliers/:id", purchasesH.DeactivateSupplier)

			admin.POST("/sessions/force-close", sessionsH.ForceCloseSession)
			admin.PUT("/pos-settings", sessionsH.SavePOSSetting)
		}

		v1.GET("/categories", catalogH.ListCategories)
		v1.GET("/brands", catalogH.ListBrands)
		v1.GET("/branches", catalogH.ListBranches)

		v1.GET("/products", productsH.ListProducts)
		v1.GET("/products/lookup/:code", productsH.LookupProduct)
		v1.GET("/products/:id", productsH.GetProduct)

		v1.POST("/inventory/adjust", inventoryH.AdjustStock)
		v1.PUT("/inventory/reorder-level", inventoryH.SetReorderLevel)
		v1.GET("/inventory/stock", inventoryH.GetStock)
		v1.GET("/inventory/movements", inventoryH.ListMovements)
		v1.GET("/inventory", inventoryH.ListInventory)

		v1.GET("/suppliers", purchasesH.ListSuppliers)
		v1.GET("/suppliers/:id", purchasesH.GetSupplier)
		v1.POST("/purchases", purchasesH.CreatePurchase)
		v1.GET("/purchases", purchasesH.ListPurchases)
		v1.GET("/purchases/:id", purchasesH.GetPurchase)
		v1.POST("/purchases/:id/items", purchasesH.AddPurchaseItem)
		v1.DELETE("/purchases/:id/items/:itemId", purchasesH.RemovePurchaseItem)
		v1.POST("/purchases/:id/receive", purchasesH.ReceivePurchase)
		v1.DELETE("/purchases/:id", purchasesH.CancelPurchase)

		v1.POST("/customers", customersH.CreateCustomer)
		v1.GET("/customers", customersH.ListCustomers)
		v1.GET("/customers/:id", customersH.GetCustomer)
		v1.PUT("/customers/:id", customersH.UpdateCustomer)
		v1.DELETE("/customers/:id", customersH.DeleteCustomer)

		v1.POST("/sessions", sessionsH.OpenSession)
		v1.GET("/sessions/active", sessionsH.ListActiveSessions)
		v1.POST("/sessions/drawer-operations", sessionsH.RecordDrawerOperation)
		v1.POST("/sessions/close", sessionsH.CloseSession)
		v1.GET("/sessions/:id/report", sessionsH.GetSessionReport)
		v1.GET("/sessions/:id", sessionsH.GetSession)
		v1.GET("/pos-settings/:branch", sessionsH.GetPOSSetting)

		v1.POST("/cart/items", cartH.AddCartItem)
		v1.PUT("/cart/items/:id", cartH.UpdateCartItem)
		v1.DELETE("/cart/items/:id", cartH.RemoveCartItem)
		v1.POST("/cart/apply-tax", cartH.ApplyTax)
		v1.POST("/cart/checkout", cartH.Checkout)
		v1.GET("/cart/:session", cartH.GetCart)
		v1.DELETE("/cart/:session", cartH.ClearCart)

		v1.POST("/sales", salesH.StartSale)
		v1.GET("/sales", salesH.ListSales)
		v1.GET("/sales/:id", salesH.GetSale)
		v1.GET("/sales/:id/receipt", salesH.DownloadReceipt)
		v1.PUT("/sales/:id", salesH.UpdateSale)
		v1.POST("/sales/:id/items", salesH.AddSaleItem)
		v1.PUT("/sales/:id/items/:itemId", salesH.UpdateSaleItem)
		v1.DELETE("/sales/:id/items/:itemId", salesH.RemoveSaleItem)
		v1.POST("/sales/:id/complete", salesH.CompleteSale)
		v1.POST("/sales/:id/cancel", salesH.CancelSale)

		v1.GET("/notifications", notificationsH.ListNotifications)
		v1.GET("/notifications/:id", notificationsH.GetNotification)

		v1.POST("/reports", reportsH.CreateReport)
		v1.GET("/reports", reportsH.ListReports)
		v1.GET("/reports/:id/download", reportsH.DownloadReport)
		v1.GET("/reports/:id", reportsH.GetReport)
	}

	return r
}
