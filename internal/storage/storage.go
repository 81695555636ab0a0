// Package storage opens the durable backend selected by configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/helios/internal/config"
	"github.com/MrJamesThe3rd/helios/internal/database"
	"github.com/MrJamesThe3rd/helios/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/helios/internal/matching/store"
	"github.com/MrJamesThe3rd/helios/internal/persist"
	persistStore "github.com/MrJamesThe3rd/helios/internal/persist/store"
)

// Backend is durable client state plus, for SQL drivers, the category rules
// sharing its database. Rules is nil for the memory driver.
type Backend struct {
	State persist.Storage
	Rules matching.Repository

	db *sql.DB
}

// Open connects and migrates the configured database.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	var (
		driver database.Driver
		dsn    string
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return &Backend{State: persist.NewMemory()}, nil
	case config.DriverPostgres:
		driver, dsn = database.DriverPostgres, cfg.ConnectionString()
	case config.DriverSQLite:
		driver, dsn = database.DriverSQLite, cfg.Storage.Path
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	db, err := database.New(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db, driver); err != nil {
		db.Close()
		return nil, err
	}

	return &Backend{
		State: persistStore.New(db, driver),
		Rules: matchingStore.New(db, driver),
		db:    db,
	}, nil
}

func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}

	return b.db.Close()
}
