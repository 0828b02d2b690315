package storage

import (
	"context"
	"errors"
	"strings"

	"nytaxi/internal/ddl"
)

// fakeRepo records statements and copied rows in memory.
type fakeRepo struct {
	closed bool
	execs  []string
	copies []fakeCopy
	count  int64

	copyErrAt int // 1-based copy call that fails; 0 never fails
}

type fakeCopy struct {
	table   string
	columns []string
	rows    [][]any
}

type fakeRow struct {
	v   int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.v
	return nil
}

var errCopy = errors.New("copy failed")

var fakeDialect = Dialect{
	Dialect: ddl.Dialect{
		Name:       "fake",
		QuoteIdent: ddl.DoubleQuote,
		MapType:    strings.ToUpper,
	},
	DayOf: CastDateText,
	First: "LIMIT 1",
}

func (f *fakeRepo) Ping(context.Context) error { return nil }

func (f *fakeRepo) Exec(_ context.Context, sql string) error {
	f.execs = append(f.execs, sql)
	return nil
}

func (f *fakeRepo) CopyFrom(_ context.Context, table string, columns []string, rows [][]any) (int64, error) {
	f.copies = append(f.copies, fakeCopy{table: table, columns: columns, rows: rows})
	if f.copyErrAt > 0 && len(f.copies) == f.copyErrAt {
		return 0, errCopy
	}
	f.count += int64(len(rows))
	return int64(len(rows)), nil
}

func (f *fakeRepo) QueryRow(_ context.Context, sql string, _ ...any) Row {
	if !strings.HasPrefix(sql, "SELECT COUNT(*)") {
		return fakeRow{err: errors.New("unexpected query: " + sql)}
	}
	return fakeRow{v: f.count}
}

func (f *fakeRepo) Dialect() Dialect { return fakeDialect }

func (f *fakeRepo) Close() { f.closed = true }
