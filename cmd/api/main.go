// Package main is the entry point for the book library API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aoideee/library-books-api/internal/config"
	"github.com/aoideee/library-books-api/internal/data"
)

// appVersion is the current version of the API, shown in logs and /healthcheck.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config *config.Config
	logger *slog.Logger
	models data.Models
}

func main() {
	// Environment and .env provide the defaults; flags override them.
	cfg := config.NewConfig()

	flag.IntVar(&cfg.Port, "port", cfg.Port, "Server port")
	flag.StringVar(&cfg.Environment, "env", cfg.Environment, "Environment (development|staging|production)")
	flag.StringVar(&cfg.Driver, "db-driver", cfg.Driver, "Database driver (postgres|sqlite)")
	flag.StringVar(&cfg.DSN, "db-dsn", cfg.DSN, "Database DSN")
	flag.IntVar(&cfg.MaxOpenConns, "db-max-open-conns", cfg.MaxOpenConns, "Database max open connections")
	flag.IntVar(&cfg.MaxIdleConns, "db-max-idle-conns", cfg.MaxIdleConns, "Database max idle connections")
	flag.DurationVar(&cfg.MaxIdleTime, "db-max-idle-time", cfg.MaxIdleTime, "Database max connection idle time")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := cfg.Validate(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	db, sqlDB, err := openDB(cfg)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer sqlDB.Close()

	logger.Info("database connection pool established", "driver", cfg.Driver)

	if err := data.Migrate(db); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	app := &applicationDependencies{
		config: cfg,
		logger: logger,
		models: data.NewModels(db),
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// openDB opens a connection pool for the configured driver, applies the pool
// limits and pings the database with a 5-second timeout to confirm it is
// reachable. The returned *sql.DB is the pool underneath the gorm handle.
func openDB(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		// sql.Open only validates the DSN format; it does not actually connect yet.
		conn, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		dialector = postgres.New(postgres.Config{Conn: conn})
	}

	logLevel := gormlogger.Warn
	if cfg.Environment == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns(cfg))
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return db, sqlDB, nil
}

// maxOpenConns caps an in-memory SQLite pool at one connection, since every
// connection to such a DSN opens its own empty database.
func maxOpenConns(cfg *config.Config) int {
	if cfg.Driver == config.DriverSQLite && isMemoryDSN(cfg.DSN) {
		return 1
	}
	return cfg.MaxOpenConns
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
