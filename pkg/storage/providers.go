package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	bunrepo "github.com/goliatone/go-activity/internal/storage/bun"
	"github.com/goliatone/go-activity/internal/storage/memory"
	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Providers exposes the repositories needed by services.
type Providers struct {
	Activities store.ActivityRepository
}

// NewMemoryProviders returns repositories backed by in-memory maps.
func NewMemoryProviders() Providers {
	return Providers{
		Activities: memory.NewActivityRepository(),
	}
}

// NewBunProviders wires Bun-backed repositories using go-repository-bun.
// The caller owns the *bun.DB lifecycle.
func NewBunProviders(db *bun.DB) Providers {
	if db == nil {
		panic("storage: bun DB is required")
	}

	// Register models so go-persistence-bun migrations can pick them up.
	persistence.RegisterModel(
		(*domain.ActivityRecord)(nil),
	)

	return Providers{
		Activities: bunrepo.NewActivityRepository(db),
	}
}

// OpenSQLite opens a sqlite database through the bun sqlite shim. An empty
// dsn opens a private in-memory database.
func OpenSQLite(dsn string) (*bun.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = "file::memory:"
	}
	sqldb, err := sql.Open(sqliteshim.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		// in-memory sqlite databases are per connection
		sqldb.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// EnsureSchema creates the tables used by the bun repositories.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return errors.New("storage: bun DB is required")
	}
	_, err := db.NewCreateTable().
		Model((*domain.ActivityRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}
