package mssql

import (
	"context"

	"nytaxi/internal/storage"
)

// newRepository is swapped by tests to avoid a real connection.
var newRepository = NewRepository

func open(ctx context.Context, dsn string) (storage.Conn, func(), error) {
	r, closeFn, err := newRepository(ctx, Config{DSN: dsn})
	if err != nil {
		return nil, nil, err
	}
	return r, closeFn, nil
}

func init() { storage.RegisterOpener("mssql", open) }
