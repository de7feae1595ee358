package sqlite

import (
	"context"
	"fmt"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "001_plagiarism_results",
		sql: `CREATE TABLE IF NOT EXISTS plagiarism_results (
            id TEXT PRIMARY KEY,
            file1 TEXT NOT NULL,
            file2 TEXT NOT NULL,
            similarity_score REAL NOT NULL,
            check_date TEXT NOT NULL
        )`,
	},
	{
		version: "002_plagiarism_results_check_date_idx",
		sql:     `CREATE INDEX IF NOT EXISTS idx_plagiarism_results_check_date ON plagiarism_results (check_date DESC)`,
	},
}

func (d *DB) applyMigrations(ctx context.Context) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}
