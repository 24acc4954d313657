package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

// Schema selects which service's tables a migration run creates.
type Schema string

const (
	AuthSchema Schema = "auth"
	BlogSchema Schema = "blog"
)

//go:embed migrations
var embedded embed.FS

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration of the schema. It is idempotent.
func (d *DB) Migrate(ctx context.Context, schema Schema) error {
	return d.withGoose(schema, func() error {
		if err := goose.UpContext(ctx, d.DB, "."); err != nil {
			return fmt.Errorf("migrate %s schema: %w", schema, err)
		}
		return nil
	})
}

// Restore brings back table when it was dropped behind goose's back. goose
// still records those migrations as applied, so they are rolled back and
// applied again.
func (d *DB) Restore(ctx context.Context, schema Schema, table string) error {
	if err := d.Migrate(ctx, schema); err != nil {
		return err
	}

	ok, err := d.TableExists(ctx, table)
	if err != nil || ok {
		return err
	}

	logrus.WithFields(logrus.Fields{"schema": schema, "table": table}).Warn("Table missing, re-applying schema")
	return d.withGoose(schema, func() error {
		if err := goose.ResetContext(ctx, d.DB, "."); err != nil {
			return fmt.Errorf("reset %s schema: %w", schema, err)
		}
		if err := goose.UpContext(ctx, d.DB, "."); err != nil {
			return fmt.Errorf("migrate %s schema: %w", schema, err)
		}
		return nil
	})
}

func (d *DB) TableExists(ctx context.Context, table string) (bool, error) {
	query := `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`
	if d.driver == DriverSQLite {
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`
	}

	var n int
	if err := d.QueryRowContext(ctx, query, table).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (d *DB) withGoose(schema Schema, fn func() error) error {
	fsys, err := d.migrationsFS(schema)
	if err != nil {
		return err
	}

	dialect := "sqlite3"
	if d.driver != DriverSQLite {
		dialect = "postgres"
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(logrus.StandardLogger())
	goose.SetBaseFS(fsys)
	goose.SetTableName(string(schema) + "_goose_db_version")
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return fn()
}

func (d *DB) migrationsFS(schema Schema) (fs.FS, error) {
	if d.schemaPath != "" {
		if _, err := os.Stat(d.schemaPath); err != nil {
			return nil, fmt.Errorf("schema path: %w", err)
		}
		return os.DirFS(d.schemaPath), nil
	}

	flavour := DriverSQLite
	if d.driver != DriverSQLite {
		flavour = DriverPostgres
	}

	sub, err := fs.Sub(embedded, path.Join("migrations", string(schema), flavour))
	if err != nil {
		return nil, fmt.Errorf("embedded migrations: %w", err)
	}
	return sub, nil
}

// LazySchema checks on every Ensure that the schema is present and
// migrates when it is not, so a failed attempt or a dropped table is
// repaired by the next caller.
type LazySchema struct {
	mu      sync.Mutex
	present func(ctx context.Context) (bool, error)
	migrate func(ctx context.Context) error
}

func NewLazySchema(present func(ctx context.Context) (bool, error), migrate func(ctx context.Context) error) *LazySchema {
	return &LazySchema{present: present, migrate: migrate}
}

// LazyTable keeps table of schema in place.
func (d *DB) LazyTable(schema Schema, table string) *LazySchema {
	return NewLazySchema(
		func(ctx context.Context) (bool, error) { return d.TableExists(ctx, table) },
		func(ctx context.Context) error { return d.Restore(ctx, schema, table) },
	)
}

func (l *LazySchema) Ensure(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ok, err := l.present(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return l.migrate(ctx)
}
