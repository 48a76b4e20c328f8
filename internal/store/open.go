package store

import (
	"context"
	"fmt"

	"github.com/robalobadob/ecommerce-api/internal/config"
	"github.com/robalobadob/ecommerce-api/internal/db"
	"github.com/robalobadob/ecommerce-api/internal/shop"
)

// Open returns the Store selected by cfg.Driver, migrating SQL databases.
func Open(ctx context.Context, cfg config.Database) (Store, error) {
	if cfg.Driver == config.DriverMemory {
		return NewMemoryStore(shop.DefaultCatalog), nil
	}

	conn, err := db.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(ctx, conn, cfg.Driver); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewSQLStore(conn), nil
}
