package result

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docsim/internal/domain"
	domresult "github.com/kailas-cloud/docsim/internal/domain/result"
)

// sqlDB is the consumer interface for the SQL result repository (ISP).
type sqlDB interface {
	ExecRetry(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLRepo stores comparison records in the plagiarism_results table.
type SQLRepo struct {
	db sqlDB
}

// NewSQL creates a SQL-backed result repository.
func NewSQL(d sqlDB) *SQLRepo {
	return &SQLRepo{db: d}
}

// Save inserts a record.
func (r *SQLRepo) Save(ctx context.Context, rec domresult.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	_, err := r.db.ExecRetry(
		ctx,
		`INSERT INTO plagiarism_results (id, file1, file2, similarity_score, check_date)
        VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.FileA, rec.FileB, rec.Score, formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns a record by id.
func (r *SQLRepo) Get(ctx context.Context, id string) (domresult.Record, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, file1, file2, similarity_score, check_date
        FROM plagiarism_results WHERE id = ?`,
		id,
	)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domresult.Record{}, domain.ErrNotFound
		}
		return domresult.Record{}, fmt.Errorf("get result %s: %w", id, err)
	}
	return rec, nil
}

// List returns up to limit records, newest first.
func (r *SQLRepo) List(ctx context.Context, limit int) ([]domresult.Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, file1, file2, similarity_score, check_date
        FROM plagiarism_results ORDER BY check_date DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domresult.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (domresult.Record, error) {
	var (
		rec     domresult.Record
		created string
	)
	if err := s.Scan(&rec.ID, &rec.FileA, &rec.FileB, &rec.Score, &created); err != nil {
		return domresult.Record{}, err
	}
	t, err := parseTime(created)
	if err != nil {
		return domresult.Record{}, err
	}
	rec.CreatedAt = t
	return rec, nil
}
