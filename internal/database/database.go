package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/varadpoddar/blog-services/internal/config"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// DB is the connection pool of one service together with the settings needed
// to migrate it.
type DB struct {
	*sql.DB
	driver     string
	schemaPath string
}

func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	dsn, err := dataSourceName(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// A single writer avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	logrus.WithField("driver", cfg.Driver).Info("Connection to database successfully!")
	return &DB{DB: db, driver: cfg.Driver, schemaPath: cfg.SchemaPath}, nil
}

func (d *DB) Driver() string {
	return d.driver
}

func (d *DB) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	err := d.DB.Close()
	logrus.WithField("driver", d.driver).Info("Connection to database closed!")
	return err
}

func dataSourceName(driver, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("database path must not be empty")
	}

	switch driver {
	case DriverSQLite:
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + "_pragma=busy_timeout(5000)&_time_format=sqlite", nil
	case DriverPostgres, DriverPgx:
		return path, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// IsUniqueViolation reports whether err is a unique constraint failure from
// any of the supported drivers.
func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"))
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return false
}
