package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/library-books-api/internal/config"
	"github.com/aoideee/library-books-api/internal/data"
)

func TestMaxOpenConns(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		dsn    string
		want   int
	}{
		{"sqlite memory", config.DriverSQLite, ":memory:", 1},
		{"sqlite shared memory uri", config.DriverSQLite, "file:books?mode=memory&cache=shared", 1},
		{"sqlite file", config.DriverSQLite, "books.db", 25},
		{"postgres", config.DriverPostgres, "postgres://books@localhost/books", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.Driver = tt.driver
			cfg.DSN = tt.dsn
			cfg.MaxOpenConns = 25

			assert.Equal(t, tt.want, maxOpenConns(cfg))
		})
	}
}

func TestOpenDB_SQLiteMemory(t *testing.T) {
	cfg := newTestConfig()
	cfg.Environment = "production"
	cfg.MaxOpenConns = 25
	cfg.MaxIdleConns = 25

	db, sqlDB, err := openDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	// Every model call must see the tables created by Migrate.
	require.NoError(t, data.Migrate(db))
	models := data.NewModels(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		books, err := models.Books.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
	}
}
