// Package pgtest opens migrated databases for repository and query tests.
package pgtest

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres"

	"github.com/glebarez/sqlite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Opener returns a migrated, empty database owned by t.
type Opener func(t *testing.T) *gorm.DB

// SQLite opens an in-memory database. The pool is pinned to one connection
// because every new connection to :memory: would see a fresh database.
func SQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = postgres.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// Postgres starts a disposable PostgreSQL container. It skips under -short.
func Postgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres dsn: %v", err)
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	return db
}

// Reset empties every table between tests.
func Reset(db *gorm.DB) error {
	models := postgres.Models()
	for i := len(models) - 1; i >= 0; i-- {
		err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}
