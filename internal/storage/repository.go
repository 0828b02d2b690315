// Package storage contains the destination contracts shared by every backend:
// the Repository interface, the backend registry, and helpers that write
// frames with replace/append semantics.
package storage

import (
	"context"
	"fmt"

	"nytaxi/internal/ddl"
)

// Row is a single query result row.
type Row interface {
	Scan(dest ...any) error
}

// Conn is a destination database handle without a lifetime. Backends
// implement it; storage.New hands it out as a Repository.
type Conn interface {
	// Ping verifies the destination is reachable.
	Ping(ctx context.Context) error

	// Exec runs a statement with no result rows (typically DDL).
	Exec(ctx context.Context, sql string) error

	// CopyFrom bulk-inserts rows aligned to columns into table and returns the
	// number of rows written.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// QueryRow runs a query expected to return at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Dialect describes how this backend spells DDL and a few query fragments.
	Dialect() Dialect
}

// Repository is an open Conn. Close releases it and is safe to call twice.
type Repository interface {
	Conn
	Close()
}

// Dialect extends the DDL dialect with the query fragments that differ
// between backends.
type Dialect struct {
	ddl.Dialect

	// DayOf renders an expression yielding the calendar day of a timestamp
	// expression as 'YYYY-MM-DD' text.
	DayOf func(expr string) string

	// First is appended to an ORDER BY query to keep only the first row.
	First string
}

// CastDateText is the DayOf shared by postgres and sqlite.
func CastDateText(expr string) string {
	return fmt.Sprintf("CAST(DATE(%s) AS TEXT)", expr)
}

// CountRows returns SELECT COUNT(*) for table.
func CountRows(ctx context.Context, repo Repository, table string) (int64, error) {
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", repo.Dialect().QuoteFQN(table))
	var n int64
	if err := repo.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: count %s: %w", table, err)
	}
	return n, nil
}
