// Package main is the entry point for the pharmabill API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pharmabill/internal/core/security"
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
	"pharmabill/internal/domain/posting"
	"pharmabill/internal/domain/registers/stock"
	"pharmabill/internal/domain/reports"
	v1 "pharmabill/internal/infrastructure/http/v1"
	"pharmabill/internal/infrastructure/storage/postgres"
	"pharmabill/internal/infrastructure/storage/postgres/auth_repo"
	"pharmabill/internal/infrastructure/storage/postgres/catalog_repo"
	"pharmabill/internal/infrastructure/storage/postgres/document_repo"
	"pharmabill/internal/infrastructure/storage/postgres/register_repo"
	"pharmabill/internal/infrastructure/storage/postgres/report_repo"
	"pharmabill/pkg/logger"
	"pharmabill/pkg/numerator"
)

var version = "dev"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting pharmabill server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	poolCfg := postgres.DefaultPoolConfig(dsn)
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping database", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(pool)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Posting policy ---
	// A filed GST period stays immutable: documents dated inside the
	// closed period cannot be posted or unposted.
	var policy security.PostingPolicy = security.OpenPolicy{}
	if raw := getEnv("CLOSED_PERIOD_UNTIL", ""); raw != "" {
		closedUntil, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Fatalw("invalid CLOSED_PERIOD_UNTIL", "value", raw, "error", err)
		}
		policy = security.NewStrictPolicy(closedUntil)
		log.Infow("posting period locked", "closed_until", raw)
	}

	// --- Registers ---
	stockRepo := register_repo.NewStockRepo(txManager)
	stockService := stock.NewService(stockRepo)

	postingEngine := posting.NewEngine(stockService, policy, txManager)

	// --- Catalogs ---
	orgRepo := catalog_repo.NewOrganizationRepo(txManager)
	orgService := organization.NewService(orgRepo, txManager)

	productRepo := catalog_repo.NewProductRepo(txManager)
	batchRepo := catalog_repo.NewBatchRepo(txManager)
	productService := product.NewService(productRepo, batchRepo, txManager, num)

	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	customerService := customer.NewService(customerRepo, txManager, num)

	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	supplierService := supplier.NewService(supplierRepo, txManager, num)

	// --- Documents ---
	invoiceRepo := document_repo.NewInvoiceRepo(txManager)
	invoiceService := invoice.NewService(invoiceRepo, postingEngine, num, txManager)

	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	purchaseService := purchase.NewService(purchaseRepo, postingEngine, num, txManager)

	salesReturnRepo := document_repo.NewSalesReturnRepo(txManager)
	salesReturnService := salesreturn.NewService(salesReturnRepo, invoiceRepo, postingEngine, num, txManager)

	purchaseReturnRepo := document_repo.NewPurchaseReturnRepo(txManager)
	purchaseReturnService := purchasereturn.NewService(purchaseReturnRepo, purchaseRepo, postingEngine, num, txManager)

	expenseRepo := document_repo.NewExpenseRepo(txManager)
	expenseService := expense.NewService(expenseRepo, num, txManager)

	registerAuditHooks(auditService, invoiceService, purchaseService, productService)

	// --- Reports ---
	reportRepo := report_repo.NewReportRepo(txManager)
	reportsService := reports.NewService(reportRepo)

	// --- Auth ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	userRepo := auth_repo.NewUserRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)
	authService := auth.NewService(userRepo, tokenRepo, txManager, jwtService, auth.DefaultServiceConfig())

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool.Unwrap(),
		Logger:       log,
		Version:      version,
		JWTValidator: jwtService,

		AuthService:         authService,
		OrganizationService: orgService,
		ProductService:      productService,
		CustomerService:     customerService,
		SupplierService:     supplierService,

		InvoiceService:        invoiceService,
		PurchaseService:       purchaseService,
		SalesReturnService:    salesReturnService,
		PurchaseReturnService: purchaseReturnService,
		ExpenseService:        expenseService,

		StockService:   stockService,
		ReportsService: reportsService,
		AuditService:   auditService,
	})

	// --- HTTP server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
