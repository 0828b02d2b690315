// Command answers runs the homework queries against the loaded tables and
// prints every answer.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"nytaxi/internal/answers"
	"nytaxi/internal/config"
	"nytaxi/internal/metrics/setup"
	"nytaxi/internal/report"
	"nytaxi/internal/storage"

	// register all backends with the storage factory.
	_ "nytaxi/internal/storage/all"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	flush, err := setup.Install(cfg, answers.Job)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	err = run(context.Background(), cfg, os.Stdout)
	flush()
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// tablesFor uses the loader's table names and its -date_column as the pickup
// timestamp.
func tablesFor(cfg *config.Config) answers.Tables {
	return answers.Tables{Zones: cfg.ZonesTable, Trips: cfg.TripsTable, Pickup: cfg.DateColumn}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	repo, err := storage.New(ctx, storage.Config{Kind: cfg.StorageKind, DSN: cfg.ResolvedDSN()})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer repo.Close()

	got, err := answers.Run(ctx, repo, tablesFor(cfg))
	if err != nil {
		return err
	}

	p := report.New(out)
	p.Header("MODULE 1 HOMEWORK - ALL ANSWERS")
	answers.Print(p, got)
	p.Banner("DONE! Copy these answers to your homework submission.")
	return nil
}
