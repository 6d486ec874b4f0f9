package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adyen/shopsuite/internal/fixtures"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/storefront"
)

// SeedOptions says what the seed task writes
type SeedOptions struct {
	// Clean empties the store first
	Clean bool
	// Catalog loads the storefront's default catalog and demo account
	Catalog bool
	// Generated record counts per table
	Users    int
	Products int
	Orders   int
}

// SeedReport counts what was written per table
type SeedReport map[string]int

// RunSeed fills store with fixtures drawn from gen
func RunSeed(ctx context.Context, store storefront.Store, gen *fixtures.Generator, opts SeedOptions, log *zap.Logger) (SeedReport, error) {
	report := SeedReport{}

	if opts.Clean {
		if err := store.Reset(ctx); err != nil {
			return nil, fmt.Errorf("failed to clean store: %w", err)
		}
		log.Info("store cleaned")
	}

	if opts.Catalog {
		if err := storefront.Seed(ctx, store); err != nil {
			return nil, err
		}
		report["products"] += len(storefront.DefaultCatalog())
		report["users"]++
	}

	for _, table := range []struct {
		name string
		n    int
	}{
		{"users", opts.Users},
		{"products", opts.Products},
		{"orders", opts.Orders},
	} {
		if table.n <= 0 {
			continue
		}
		records, err := gen.Fixture(table.name, table.n)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if err := insert(ctx, store, rec); err != nil {
				return nil, fmt.Errorf("seed %s: %w", table.name, err)
			}
		}
		report[table.name] += len(records)
	}

	log.Info("store seeded",
		zap.Int("users", report["users"]),
		zap.Int("products", report["products"]),
		zap.Int("orders", report["orders"]),
		zap.Int64("seed", gen.Seed()),
	)
	return report, nil
}

func insert(ctx context.Context, store storefront.Store, rec any) error {
	switch r := rec.(type) {
	case models.Account:
		_, err := store.CreateAccount(ctx, r)
		return err
	case models.Product:
		return store.CreateProduct(ctx, r)
	case *models.Order:
		return store.CreateOrder(ctx, r)
	default:
		return fmt.Errorf("unexpected fixture %T", rec)
	}
}
