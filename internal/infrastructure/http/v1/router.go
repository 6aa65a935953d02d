package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmabill/internal/domain/auth"
	"pharmabill/internal/domain/catalogs/customer"
	"pharmabill/internal/domain/catalogs/organization"
	"pharmabill/internal/domain/catalogs/product"
	"pharmabill/internal/domain/catalogs/supplier"
	"pharmabill/internal/domain/documents/expense"
	"pharmabill/internal/domain/documents/invoice"
	"pharmabill/internal/domain/documents/purchase"
	"pharmabill/internal/domain/documents/purchasereturn"
	"pharmabill/internal/domain/documents/salesreturn"
	"pharmabill/internal/domain/registers/stock"
	"pharmabill/internal/domain/reports"
	"pharmabill/internal/infrastructure/http/v1/handlers"
	"pharmabill/internal/infrastructure/http/v1/middleware"
	"pharmabill/internal/infrastructure/storage/postgres"
	"pharmabill/pkg/logger"
)

// Role groups used by the route tables.
var (
	ownerOnly    = []string{string(auth.RoleOwner)}
	backOffice   = []string{string(auth.RoleOwner), string(auth.RolePharmacist)}
	salesCounter = []string{string(auth.RoleOwner), string(auth.RolePharmacist), string(auth.RoleCashier)}
)

// RouterConfig holds everything the router needs. Services are
// constructed once at startup; handlers are stateless over them.
type RouterConfig struct {
	Pool    *pgxpool.Pool
	Logger  *logger.Logger
	Version string

	JWTValidator middleware.JWTValidator

	AuthService         *auth.Service
	OrganizationService *organization.Service
	ProductService      *product.Service
	CustomerService     *customer.Service
	SupplierService     *supplier.Service

	InvoiceService        *invoice.Service
	PurchaseService       *purchase.Service
	SalesReturnService    *salesreturn.Service
	PurchaseReturnService *purchasereturn.Service
	ExpenseService        *expense.Service

	StockService   *stock.Service
	ReportsService *reports.Service
	AuditService   *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints, no auth
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	orgHandler := handlers.NewOrganizationHandler(base, cfg.OrganizationService)

	v1 := router.Group("/api/v1")
	{
		// Public: organization signup and login
		v1.POST("/organizations", orgHandler.Create)
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/refresh", authHandler.Refresh)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerAuthRoutes(protected, authHandler)
		registerOrganizationRoutes(protected, orgHandler)
		registerCatalogRoutes(protected, base, cfg)
		registerDocumentRoutes(protected, base, cfg)
		registerRegisterRoutes(protected, base, cfg)
		registerReportRoutes(protected, base, cfg)
		registerAuditRoutes(protected, cfg)
	}

	return router
}

func registerAuthRoutes(group *gin.RouterGroup, h *handlers.AuthHandler) {
	authGroup := group.Group("/auth")
	{
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.Me)
		authGroup.GET("/users", middleware.RequireRole(ownerOnly...), h.ListUsers)
		authGroup.PUT("/users/:id/role", middleware.RequireRole(ownerOnly...), h.ChangeRole)
	}
}

func registerOrganizationRoutes(group *gin.RouterGroup, h *handlers.OrganizationHandler) {
	orgs := group.Group("/organizations")
	{
		orgs.GET("/current", h.Current)
		orgs.GET("", middleware.RequireRole(ownerOnly...), h.List)
		orgs.GET("/:id", middleware.RequireRole(ownerOnly...), h.Get)
		orgs.PUT("/:id", middleware.RequireRole(ownerOnly...), h.Update)
	}
}

func registerCatalogRoutes(group *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	products := group.Group("/products")
	RegisterCatalogRoutes(products, productHandler, backOffice...)
	products.GET("/by-hsn/:hsn", productHandler.FindByHSN)
	products.GET("/:id/batches", productHandler.ListBatches)
	products.POST("/:id/batches", middleware.RequireRole(backOffice...), productHandler.AddBatch)

	customerHandler := handlers.NewCustomerHandler(base, cfg.CustomerService)
	customers := group.Group("/customers")
	RegisterCatalogRoutes(customers, customerHandler, salesCounter...)
	customers.GET("/by-gstin/:gstin", customerHandler.FindByGSTIN)

	supplierHandler := handlers.NewSupplierHandler(base, cfg.SupplierService)
	suppliers := group.Group("/suppliers")
	RegisterCatalogRoutes(suppliers, supplierHandler, backOffice...)
	suppliers.GET("/by-gstin/:gstin", supplierHandler.FindByGSTIN)
}

func registerDocumentRoutes(group *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	invoiceHandler := handlers.NewInvoiceHandler(base, cfg.InvoiceService, cfg.SalesReturnService)
	RegisterDocumentRoutes(group.Group("/invoices"), invoiceHandler, salesCounter, salesCounter)

	purchaseHandler := handlers.NewPurchaseHandler(base, cfg.PurchaseService, cfg.PurchaseReturnService)
	RegisterDocumentRoutes(group.Group("/purchases"), purchaseHandler, backOffice, backOffice)

	salesReturnHandler := handlers.NewSalesReturnHandler(base, cfg.SalesReturnService)
	RegisterDocumentRoutes(group.Group("/sales-returns"), salesReturnHandler, backOffice, backOffice)

	purchaseReturnHandler := handlers.NewPurchaseReturnHandler(base, cfg.PurchaseReturnService)
	RegisterDocumentRoutes(group.Group("/purchase-returns"), purchaseReturnHandler, backOffice, backOffice)

	// Expenses have no posting step, so they get explicit routes.
	expenseHandler := handlers.NewExpenseHandler(base, cfg.ExpenseService)
	write := middleware.RequireRole(backOffice...)
	expenses := group.Group("/expenses")
	{
		expenses.GET("", expenseHandler.List)
		expenses.GET("/summary", expenseHandler.Summary)
		expenses.GET("/:id", expenseHandler.Get)
		expenses.POST("", write, expenseHandler.Create)
		expenses.PUT("/:id", write, expenseHandler.Update)
		expenses.DELETE("/:id", write, expenseHandler.Delete)
	}
}

func registerRegisterRoutes(group *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	stockHandler := handlers.NewStockHandler(base, cfg.StockService)
	stockGroup := group.Group("/stock")
	{
		stockGroup.GET("/:productId/availability", stockHandler.Availability)
		stockGroup.GET("/:productId/balances", stockHandler.Balances)
		stockGroup.GET("/:productId/movements", stockHandler.Movements)
	}
}

func registerReportRoutes(group *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	reportsGroup := group.Group("/reports", middleware.RequireRole(ownerOnly...))
	{
		reportsGroup.GET("/gstr1", reportsHandler.GSTR1)
		reportsGroup.GET("/gstr1/export", reportsHandler.GSTR1Export)
		reportsGroup.GET("/gstr3b", reportsHandler.GSTR3B)
		reportsGroup.GET("/hsn-summary", reportsHandler.HSNSummary)
		reportsGroup.GET("/tax-summary", reportsHandler.TaxSummary)
	}
}

func registerAuditRoutes(group *gin.RouterGroup, cfg RouterConfig) {
	auditHandler := handlers.NewAuditHandler(cfg.AuditService)
	group.GET("/audit/:entityType/:id", middleware.RequireRole(ownerOnly...), auditHandler.History)
}
