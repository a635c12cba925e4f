// Package client contains the local persistence bootstrap for PhotoKeeper:
// opening the SQLite photo database, applying embedded goose migrations,
// and wiring the repositories used by the services layer.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/photokeeper/internal/client/migrations"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/bots"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/photos"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/remotephotos"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/settings"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the SQLite-backed repositories over one database.
type Repositories struct {
	Photos       photos.Repository
	RemotePhotos remotephotos.Repository
	Bots         bots.Repository
	Settings     settings.Repository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the local photo database at dsn, applies
// migrations, and returns the handle together with wired repositories.
// The caller owns the returned *sql.DB and must close it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, *Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repos := &Repositories{
		Photos:       photos.NewSQLiteRepository(db),
		RemotePhotos: remotephotos.NewSQLiteRepository(db),
		Bots:         bots.NewSQLiteRepository(db),
		Settings:     settings.NewSQLiteRepository(db),
	}
	return db, repos, nil
}
