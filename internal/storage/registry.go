package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name: postgres, sqlite, mssql, mysql.
	Kind string
	// DSN is passed to the backend driver unchanged.
	DSN string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for kind. Backends call it from init.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// Opener opens a backend Conn for dsn and returns the func that releases it.
type Opener func(ctx context.Context, dsn string) (Conn, func(), error)

// RegisterOpener registers kind with a Factory built from open. Open errors
// are prefixed with kind.
func RegisterOpener(kind string, open Opener) {
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		c, release, err := open(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: open: %w", kind, err)
		}
		return &openConn{Conn: c, release: release}, nil
	})
}

type openConn struct {
	Conn
	once    sync.Once
	release func()
}

func (c *openConn) Close() {
	c.once.Do(func() {
		if c.release != nil {
			c.release()
		}
	})
}

// ListKinds returns the registered kinds, sorted. The slice is a copy.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
