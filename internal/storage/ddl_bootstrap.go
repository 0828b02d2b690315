package storage

import (
	"context"
	"fmt"

	"nytaxi/internal/ddl"
)

// ReplaceTable drops td.FQN if present and creates it from td.
func ReplaceTable(ctx context.Context, repo Repository, td ddl.TableDef) error {
	d := repo.Dialect()
	drop, err := d.BuildDropTableSQL(td.FQN)
	if err != nil {
		return err
	}
	if err := repo.Exec(ctx, drop); err != nil {
		return fmt.Errorf("storage: drop %s: %w", td.FQN, err)
	}
	create, err := d.BuildCreateTableSQL(td, false)
	if err != nil {
		return err
	}
	if err := repo.Exec(ctx, create); err != nil {
		return fmt.Errorf("storage: create %s: %w", td.FQN, err)
	}
	return nil
}

// EnsureTable creates td.FQN only if it does not exist yet.
func EnsureTable(ctx context.Context, repo Repository, td ddl.TableDef) error {
	create, err := repo.Dialect().BuildCreateTableSQL(td, true)
	if err != nil {
		return err
	}
	if err := repo.Exec(ctx, create); err != nil {
		return fmt.Errorf("storage: ensure %s: %w", td.FQN, err)
	}
	return nil
}
