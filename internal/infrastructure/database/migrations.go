package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/postgres/*.up.sql migrations/sqlite/*.up.sql
var migrationFiles embed.FS

const (
	postgresMigrations = "migrations/postgres"
	sqliteMigrations   = "migrations/sqlite"
)

// RunPostgresMigrations executes the bundled postgres .up.sql files in name
// order. Every file is written to be idempotent.
func RunPostgresMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return runMigrations(migrationFiles, postgresMigrations, func(name, stmt string) error {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		return nil
	})
}

// RunSQLiteMigrations is the sqlite counterpart of RunPostgresMigrations.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(migrationFiles, sqliteMigrations, func(name, stmt string) error {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		return nil
	})
}

func runMigrations(fsys fs.FS, dir string, exec func(name, stmt string) error) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".up.sql") {
			upFiles = append(upFiles, f.Name())
		}
	}

	sort.Strings(upFiles)

	for _, filename := range upFiles {
		content, err := fs.ReadFile(fsys, path.Join(dir, filename))
		if err != nil {
			return fmt.Errorf("reading migration file %s: %w", filename, err)
		}

		if err := exec(filename, string(content)); err != nil {
			return err
		}
	}

	return nil
}
