package mariadb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is the MariaDB directory and assignment store
type DB struct {
	db *sql.DB
}

// NewDB opens a MariaDB connection from a DSN of the form
// user:password@tcp(host:port)/dbname. Times are always parsed and stored as UTC.
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	conn := sql.OpenDB(connector)
	conn.SetConnMaxLifetime(3 * time.Minute)
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(10)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: conn}, nil
}

// Close closes the database connection pool
func (d *DB) Close() {
	d.db.Close()
}

// RunMigrations applies pending embedded migrations in filename order and returns the
// filenames it applied. MariaDB commits DDL implicitly, so each statement runs on its own.
func (d *DB) RunMigrations(ctx context.Context) ([]string, error) {
	_, err := d.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := d.db.QueryContext(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan migration filename: %w", err)
		}
		applied[filename] = true
	}
	rows.Close()

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") && !applied[entry.Name()] {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	var ran []string
	for _, filename := range sqlFiles {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+filename)
		if err != nil {
			return ran, fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		for _, statement := range splitStatements(string(content)) {
			if _, err := d.db.ExecContext(ctx, statement); err != nil {
				return ran, fmt.Errorf("failed to execute migration %s: %w", filename, err)
			}
		}

		if _, err := d.db.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES (?)`, filename); err != nil {
			return ran, fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
		ran = append(ran, filename)
	}

	return ran, nil
}

// splitStatements splits a migration file into statements on semicolons.
// Migration files must not contain semicolons inside string literals.
func splitStatements(content string) []string {
	var statements []string
	for _, part := range strings.Split(content, ";") {
		statement := strings.TrimSpace(part)
		if statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
