// Package file implements the local filesystem data source used by the
// zone and trip loaders.
package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"nytaxi/internal/datasource"
)

// Local opens one file from the local disk.
type Local struct{ path string }

var _ datasource.Source = (*Local)(nil)

// NewLocal returns a Local source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open implements datasource.Source.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := l.OpenFile(ctx)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// OpenFile is Open returning the *os.File, for readers that need random
// access (Parquet footers live at the end of the file).
//
// A context that is already done short-circuits without touching the disk.
// Filesystem errors keep their cause, so errors.Is(err, os.ErrNotExist) works.
func (l *Local) OpenFile(ctx context.Context) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
