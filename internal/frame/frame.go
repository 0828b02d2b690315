// Package frame holds small in-memory record sets: an ordered list of typed
// columns plus rows of Go values aligned to those columns. It is the unit the
// loaders read from source files and hand to storage in contiguous slices.
package frame

import (
	"time"

	"nytaxi/internal/ddl"
)

// Column is a named column with a logical kind (ddl.KindInt, ddl.KindText, ...).
type Column struct {
	Name string
	Kind string
}

// Frame is a column-typed, row-major record set. Row values are nil, int64,
// float64, bool, string, []byte or time.Time.
type Frame struct {
	Columns []Column
	Rows    [][]any
}

// New returns an empty Frame with the given columns.
func New(cols ...Column) *Frame {
	return &Frame{Columns: cols}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Names returns the column names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Name
	}
	return out
}

// Kinds returns the column kinds in order.
func (f *Frame) Kinds() []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Kind
	}
	return out
}

// Index returns the position of the named column, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Slice returns rows [i, j) as a Frame sharing columns and row storage with f.
// Bounds are clamped to [0, Len()].
func (f *Frame) Slice(i, j int) *Frame {
	n := len(f.Rows)
	if i < 0 {
		i = 0
	}
	if j > n {
		j = n
	}
	if i > j {
		i = j
	}
	return &Frame{Columns: f.Columns, Rows: f.Rows[i:j:j]}
}

// TimeRange returns the earliest and latest non-null time.Time values in the
// named column. ok is false when the column is missing or holds no times.
func (f *Frame) TimeRange(name string) (minT, maxT time.Time, ok bool) {
	idx := f.Index(name)
	if idx < 0 {
		return time.Time{}, time.Time{}, false
	}
	for _, row := range f.Rows {
		t, isTime := row[idx].(time.Time)
		if !isTime {
			continue
		}
		if !ok || t.Before(minT) {
			minT = t
		}
		if !ok || t.After(maxT) {
			maxT = t
		}
		ok = true
	}
	return minT, maxT, ok
}

// TableDef derives a DDL definition for table from the frame's columns using
// the backend's type mapping.
func (f *Frame) TableDef(table string, mapType func(string) string) ddl.TableDef {
	return ddl.FromKinds(table, f.Names(), f.Kinds(), mapType)
}
