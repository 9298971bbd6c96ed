package db

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open connects to the catalog database named by dsn. "sqlite:" prefixed and
// "*.db" paths use the pure-Go SQLite driver; anything else is handed to pgx.
func Open(dsn string) (*sqlx.DB, error) {
	driver, source := Driver(dsn)

	db, err := sqlx.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", driver, err)
	}

	if driver == "pgx" {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	} else {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return db, nil
}

// Driver maps a dsn to its database/sql driver name and data source.
func Driver(dsn string) (driver string, source string) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite:")
	case strings.HasSuffix(dsn, ".db"), dsn == ":memory:":
		return "sqlite", dsn
	default:
		return "pgx", dsn
	}
}
