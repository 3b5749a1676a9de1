// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/domain/auth"
	"coatline/internal/domain/catalogs/operations"
	"coatline/internal/domain/catalogs/partner"
	"coatline/internal/domain/catalogs/rawsitem"
	"coatline/internal/domain/catalogs/salesitem"
	"coatline/internal/infrastructure/storage/postgres"
	"coatline/internal/infrastructure/storage/postgres/auth_repo"
	"coatline/internal/infrastructure/storage/postgres/catalog_repo"
	"coatline/pkg/logger"
	"coatline/pkg/numerator"

	"github.com/shopspring/decimal"
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

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, numerator.New(pool), log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	userRepo := auth_repo.NewUserRepo(txManager)

	exists, err := userRepo.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if exists {
		log.Infow("admin user already exists", "username", username)
		return nil
	}

	authService := auth.NewService(userRepo, txManager, nil, auth.DefaultServiceConfig())
	user, err := authService.Register(ctx, auth.RegisterRequest{
		Username: username,
		Password: password,
		Name:     "Administrator",
	})
	if err != nil {
		return fmt.Errorf("register admin user: %w", err)
	}

	log.Infow("admin user created", "username", username, "id", user.ID.String())
	return nil
}

// seedDemoData loads a small demo dataset: partners, raw and sales items
// with routing, and opening raw stock. Master data goes in via CopyFrom,
// the rest through the repositories.
func seedDemoData(ctx context.Context, txManager *postgres.TxManager, num *numerator.Service, log *logger.Logger) error {
	partnerRepo := catalog_repo.NewPartnerRepo(txManager)
	if _, err := partnerRepo.FindByName(ctx, "Hanil Chemicals"); err == nil {
		log.Info("demo data already present, skipping")
		return nil
	} else if !apperror.IsNotFound(err) {
		return err
	}

	batch := postgres.NewBatchInserter(txManager)
	opRepo := catalog_repo.NewOperationRepo(txManager)
	itemRepo := catalog_repo.NewSalesItemRepo(txManager)

	supplier := partner.NewPartner("Hanil Chemicals", partner.TypeSupplier)
	supplier.Code = "P-00001"
	customer := partner.NewPartner("Daesung Motors", partner.TypeCustomer)
	customer.Code = "P-00002"

	rawPowder := rawsitem.NewRawsItem("RAW-001", "Epoxy Powder", supplier.ID)
	rawPowder.Spec = strPtr("25kg bag")
	rawPowder.Color = strPtr("RAL9005")
	rawThinner := rawsitem.NewRawsItem("RAW-002", "Thinner", supplier.ID)
	rawThinner.Spec = strPtr("18L can")

	bracket := salesitem.NewSalesItem("ITEM-001", "Door Bracket", customer.ID)
	bracket.PartnerName = customer.Name
	bracket.Price = decimal.NewFromInt(1200)
	bracket.CoatingMethod = strPtr("powder")

	degrease := operations.NewOperation("OP-001", "Degrease", 1)
	coat := operations.NewOperation("OP-002", "Powder Coat", 2)
	cure := operations.NewOperation("OP-003", "Cure", 3)

	err := txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := batch.CopyFromSlice(ctx, "cat_partners",
			[]string{"id", "code", "name", "type", "active", "version", "created_at", "updated_at"},
			[][]any{
				{supplier.ID, supplier.Code, supplier.Name, supplier.Type, true, 1, supplier.CreatedAt, supplier.UpdatedAt},
				{customer.ID, customer.Code, customer.Name, customer.Type, true, 1, customer.CreatedAt, customer.UpdatedAt},
			})
		if err != nil {
			return fmt.Errorf("seed partners: %w", err)
		}
		log.Infow("partners seeded", "count", n)

		n, err = batch.CopyFromSlice(ctx, "cat_raws_items",
			[]string{"id", "code", "name", "supplier_id", "spec", "color", "active", "version", "created_at", "updated_at"},
			[][]any{
				{rawPowder.ID, rawPowder.Code, rawPowder.Name, rawPowder.SupplierID, rawPowder.Spec, rawPowder.Color, true, 1, rawPowder.CreatedAt, rawPowder.UpdatedAt},
				{rawThinner.ID, rawThinner.Code, rawThinner.Name, rawThinner.SupplierID, rawThinner.Spec, rawThinner.Color, true, 1, rawThinner.CreatedAt, rawThinner.UpdatedAt},
			})
		if err != nil {
			return fmt.Errorf("seed raw items: %w", err)
		}
		log.Infow("raw items seeded", "count", n)

		n, err = batch.CopyFromSlice(ctx, "cat_sales_items",
			[]string{"id", "code", "name", "partner_id", "partner_name", "price", "coating_method", "total_operations", "active", "version", "created_at", "updated_at"},
			[][]any{
				{bracket.ID, bracket.Code, bracket.Name, bracket.PartnerID, bracket.PartnerName, bracket.Price, bracket.CoatingMethod, 0, true, 1, bracket.CreatedAt, bracket.UpdatedAt},
			})
		if err != nil {
			return fmt.Errorf("seed sales items: %w", err)
		}
		log.Infow("sales items seeded", "count", n)

		for _, op := range []*operations.Operation{degrease, coat, cure} {
			if err := opRepo.Create(ctx, op); err != nil {
				return fmt.Errorf("seed operation %s: %w", op.Code, err)
			}
		}
		log.Infow("operations seeded", "count", 3)

		steps := []salesitem.RoutingStep{
			{SalesItemID: bracket.ID, OperationID: degrease.ID, Seq: 1},
			{SalesItemID: bracket.ID, OperationID: coat.ID, Seq: 2},
			{SalesItemID: bracket.ID, OperationID: cure.ID, Seq: 3},
		}
		if err := itemRepo.ReplaceRouting(ctx, bracket.ID, steps); err != nil {
			return fmt.Errorf("seed routing: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Move the partner code counter past the seeded codes so generated
	// codes never collide with them.
	if last := numerator.ParseNumber(customer.Code); last > 0 {
		if err := num.SetNextNumber(ctx, partner.CodeSequence(), time.Now(), last); err != nil {
			return fmt.Errorf("advance partner code sequence: %w", err)
		}
	}

	log.Info("demo data seeded")
	return nil
}

func strPtr(s string) *string {
	return &s
}
