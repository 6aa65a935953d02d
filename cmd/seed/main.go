// Package main provides a CLI tool for seeding the database with a
// demo pharmacy: one organization, an owner login, and a small set of
// catalog records to bill against.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
	"pharmabill/internal/domain/auth"
	"pharmabill/internal/domain/catalogs/customer"
	"pharmabill/internal/domain/catalogs/organization"
	"pharmabill/internal/domain/catalogs/product"
	"pharmabill/internal/domain/catalogs/supplier"
	"pharmabill/internal/infrastructure/storage/postgres"
	"pharmabill/internal/infrastructure/storage/postgres/auth_repo"
	"pharmabill/internal/infrastructure/storage/postgres/catalog_repo"
	"pharmabill/pkg/logger"
	"pharmabill/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	log = log.With("component", "seed")

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(pool)

	orgService := organization.NewService(catalog_repo.NewOrganizationRepo(txManager), txManager)

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(getEnv("JWT_SECRET", "seed-only-secret")))
	authService := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth_repo.NewTokenRepo(txManager),
		txManager,
		jwtService,
		auth.DefaultServiceConfig(),
	)

	orgID, err := seedOrganization(ctx, orgService, log)
	if err != nil {
		log.Fatalw("failed to seed organization", "error", err)
	}

	if err := seedOwner(ctx, authService, orgID, log); err != nil {
		log.Fatalw("failed to seed owner user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		productService := product.NewService(
			catalog_repo.NewProductRepo(txManager),
			catalog_repo.NewBatchRepo(txManager),
			txManager, num,
		)
		customerService := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager, num)
		supplierService := supplier.NewService(catalog_repo.NewSupplierRepo(txManager), txManager, num)

		if err := seedDemoData(ctx, orgID, productService, customerService, supplierService, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedOrganization(ctx context.Context, svc *organization.Service, log *logger.Logger) (id.ID, error) {
	gstin := getEnv("SEED_ORG_GSTIN", "27AAPFU0939F1ZV")

	org := organization.New(getEnv("SEED_ORG_NAME", "Demo Pharmacy"), gstin)
	org.LegalName = "Demo Pharmacy Private Limited"
	org.DrugLicenseNumber = "MH-MZ1-123456"
	org.Address = "12 MG Road, Pune, Maharashtra"

	err := svc.Create(ctx, org)
	if err == nil {
		log.Infow("organization created", "id", org.ID, "gstin", gstin)
		return org.ID, nil
	}

	if apperror.IsCode(err, apperror.CodeDuplicate) {
		log.Infow("organization already exists", "gstin", gstin)
		result, listErr := svc.List(ctx, listAll())
		if listErr != nil {
			return id.Nil(), listErr
		}
		for _, existing := range result.Items {
			if existing.GSTIN == gstin {
				return existing.ID, nil
			}
		}
	}

	return id.Nil(), err
}

func seedOwner(ctx context.Context, svc *auth.Service, orgID id.ID, log *logger.Logger) error {
	email := getEnv("SEED_OWNER_EMAIL", "owner@demo-pharmacy.in")

	user, err := svc.Register(ctx, auth.RegisterRequest{
		OrganizationID: orgID,
		Email:          email,
		Password:       getEnv("SEED_OWNER_PASSWORD", "Owner123!"),
		FullName:       "Demo Owner",
		Role:           auth.RoleOwner,
	})
	if err != nil {
		if apperror.IsCode(err, apperror.CodeDuplicate) {
			log.Infow("owner user already exists", "email", email)
			return nil
		}
		return err
	}

	log.Infow("owner user created", "id", user.ID, "email", email)
	return nil
}

func seedDemoData(
	ctx context.Context,
	orgID id.ID,
	products *product.Service,
	customers *customer.Service,
	suppliers *supplier.Service,
	log *logger.Logger,
) error {
	demoProducts := []struct {
		name    string
		hsn     string
		gstRate string
		price   string
		uqc     string
		rx      bool
	}{
		{"Paracetamol 500mg Tablets", "3004", "12", "25.50", "BOX", false},
		{"Amoxicillin 250mg Capsules", "3004", "12", "85.00", "BOX", true},
		{"Cough Syrup 100ml", "3004", "12", "110.00", "BTL", false},
		{"Hand Sanitizer 500ml", "3808", "18", "150.00", "BTL", false},
		{"Digital Thermometer", "9025", "18", "240.00", "NOS", false},
	}

	for _, dp := range demoProducts {
		p := product.New(orgID, dp.name, dp.hsn, types.MustMoney(dp.gstRate))
		p.UnitPrice = types.MustMoney(dp.price)
		p.UQC = dp.uqc
		p.PrescriptionRequired = dp.rx

		if err := products.Create(ctx, p); err != nil {
			if apperror.IsCode(err, apperror.CodeDuplicate) {
				continue
			}
			return fmt.Errorf("create product %q: %w", dp.name, err)
		}

		expiry := time.Now().AddDate(2, 0, 0)
		batch := product.NewBatch(p.ID, "DEMO-"+p.Code)
		batch.ExpiryDate = &expiry
		batch.MRP = p.UnitPrice.Mul(types.MustMoney("1.2"))
		batch.PurchasePrice = p.UnitPrice.Mul(types.MustMoney("0.7"))
		batch.Quantity = types.MustMoney("100")

		if err := products.AddBatch(ctx, batch); err != nil {
			return fmt.Errorf("create batch for %q: %w", dp.name, err)
		}

		log.Infow("product created", "name", dp.name, "hsn", dp.hsn)
	}

	registered := customer.New(orgID, "City Hospital Pharmacy")
	registered.GSTIN = "27AABCU9603R1ZM"
	if err := customers.Create(ctx, registered); err != nil && !apperror.IsCode(err, apperror.CodeDuplicate) {
		return fmt.Errorf("create customer: %w", err)
	}

	walkIn := customer.New(orgID, "Walk-in Customer")
	walkIn.StateCode = "27"
	if err := customers.Create(ctx, walkIn); err != nil && !apperror.IsCode(err, apperror.CodeDuplicate) {
		return fmt.Errorf("create customer: %w", err)
	}

	distributor := supplier.New(orgID, "MedSupply Distributors")
	distributor.GSTIN = "27AADCB2230M1ZT"
	distributor.DrugLicenseNumber = "MH-MZ2-654321"
	if err := suppliers.Create(ctx, distributor); err != nil && !apperror.IsCode(err, apperror.CodeDuplicate) {
		return fmt.Errorf("create supplier: %w", err)
	}

	log.Info("demo data seeded")
	return nil
}

func listAll() domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Limit = 1000
	return filter
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
