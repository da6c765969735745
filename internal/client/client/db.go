// Package client bootstraps the local logbook database and its
// repositories.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cdot/divelog/internal/client/migrations"
	"github.com/cdot/divelog/internal/client/repositories/kvstore"
	"github.com/cdot/divelog/internal/client/repositories/pages"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the stores built over one database handle.
type Repositories struct {
	KV    kvstore.Store
	Pages pages.Repository
	DB    *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn, migrates it, and wires the
// repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	kv := kvstore.NewSQLiteRepository(db)
	return &Repositories{
		KV:    kv,
		Pages: pages.NewKVRepository(kv),
		DB:    db,
	}, nil
}
