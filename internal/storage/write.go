package storage

import (
	"context"
	"fmt"

	"nytaxi/internal/frame"
)

// Mode says what happens to an existing destination table.
type Mode int

const (
	// Replace drops the table, recreates it from the frame's columns and writes.
	Replace Mode = iota
	// Append creates the table if missing and adds rows after existing ones.
	Append
)

func (m Mode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Append:
		return "append"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// WriteFrame writes f into table using mode. An empty frame still replaces or
// creates the table. Returns the number of rows written.
func WriteFrame(ctx context.Context, repo Repository, table string, f *frame.Frame, mode Mode) (int64, error) {
	td := f.TableDef(table, repo.Dialect().MapType)

	var err error
	switch mode {
	case Replace:
		err = ReplaceTable(ctx, repo, td)
	case Append:
		err = EnsureTable(ctx, repo, td)
	default:
		return 0, fmt.Errorf("storage: write %s: unknown mode %s", table, mode)
	}
	if err != nil {
		return 0, err
	}

	if f.Len() == 0 {
		return 0, nil
	}
	n, err := repo.CopyFrom(ctx, table, f.Names(), f.Rows)
	if err != nil {
		return n, fmt.Errorf("storage: write %s (%s): %w", table, mode, err)
	}
	return n, nil
}
