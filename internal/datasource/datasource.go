// Package datasource defines where loader input bytes come from.
package datasource

import (
	"context"
	"io"
)

// Source opens a fresh stream of the input. Callers close it.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
