package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aoideee/library-books-api/internal/config"
	"github.com/aoideee/library-books-api/internal/data"
)

func newTestConfig() *config.Config {
	return &config.Config{
		HTTP:     config.HTTP{Port: 4000},
		Database: config.Database{Driver: config.DriverSQLite, DSN: ":memory:", MaxOpenConns: 1},
		Global:   config.Global{Environment: "development", ShutdownTimeout: time.Second},
	}
}

// newTestApplication returns an application backed by a fresh in-memory
// SQLite database.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, data.Migrate(db))

	return &applicationDependencies{
		config: newTestConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		models: data.NewModels(db),
	}
}

// do sends one request through the full route table.
func (app *applicationDependencies) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// failingBookStore stands in for an unreachable database.
type failingBookStore struct {
	err error
}

func (s failingBookStore) Insert(context.Context, *data.Book) error { return s.err }
func (s failingBookStore) Get(context.Context, uint) (*data.Book, error) {
	return nil, s.err
}
func (s failingBookStore) GetAll(context.Context) ([]data.Book, error) { return nil, s.err }
func (s failingBookStore) Update(context.Context, uint, data.UpdateBookInput) (*data.Book, error) {
	return nil, s.err
}
func (s failingBookStore) Delete(context.Context, uint) error { return s.err }

var _ data.BookStore = failingBookStore{}

func withFailingStore(app *applicationDependencies, err error) *applicationDependencies {
	app.models.Books = failingBookStore{err: err}
	return app
}
