// Command load loads the taxi zone lookup CSV and the green trip Parquet
// file into the configured database, then prints row counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"nytaxi/internal/config"
	"nytaxi/internal/datasource/file"
	"nytaxi/internal/load"
	"nytaxi/internal/metrics/setup"
	"nytaxi/internal/report"
	"nytaxi/internal/storage"
	"nytaxi/internal/verify"

	// register all backends with the storage factory.
	_ "nytaxi/internal/storage/all"
)

const dateLayout = "2006-01-02 15:04:05"

func main() {
	validateOnly := flag.Bool("validate", false, "validate the configuration and exit")

	cfg, err := config.Load()
	if err != nil {
		fatalf("config: %v", err)
	}
	if !checkConfig(os.Stderr, cfg) {
		os.Exit(1)
	}
	if *validateOnly {
		log.Printf("configuration is valid")
		return
	}

	flush, err := setup.Install(cfg, load.Job)
	if err != nil {
		fatalf("%v", err)
	}

	err = run(context.Background(), cfg, os.Stdout)
	flush()
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// checkConfig prints validation issues and reports whether cfg is usable.
func checkConfig(w io.Writer, cfg *config.Config) bool {
	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(w, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	return !config.HasErrors(issues)
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	p := report.New(out)
	p.Header("MODULE 1 HOMEWORK - DATA LOADING")

	p.Printf("Connecting to %s...\n", cfg.StorageKind)
	repo, err := storage.New(ctx, storage.Config{Kind: cfg.StorageKind, DSN: cfg.ResolvedDSN()})
	if err == nil {
		if err = repo.Ping(ctx); err != nil {
			repo.Close()
		}
	}
	if err != nil {
		p.Printf("Connection failed: %v\n", err)
		return fmt.Errorf("connect: %w", err)
	}
	defer repo.Close()
	p.Printf("Connected successfully\n\n")

	p.Section("1. LOADING TAXI ZONES")
	zones, err := load.LoadZones(ctx, file.NewLocal(cfg.ZonesCSV), repo, cfg.ZonesTable)
	if err != nil {
		return err
	}
	p.Printf("Loaded %d zones\n\n", zones)

	p.Section("2. LOADING GREEN TAXI TRIPS")
	start := time.Now()
	tl := &load.TripLoader{
		Repo:       repo,
		Table:      cfg.TripsTable,
		ChunkSize:  cfg.ChunkSize,
		DateColumn: cfg.DateColumn,
	}
	res, err := tl.Run(ctx, file.NewLocal(cfg.TripsParquet))
	if err != nil {
		return err
	}
	p.Printf("Read %d trips\n", res.Read)
	if res.HasDates {
		p.Printf("Date range: %s to %s\n", res.DateMin.Format(dateLayout), res.DateMax.Format(dateLayout))
	}
	p.Printf("Loaded %d trips in %d chunks (%s)\n\n", res.Written, res.Chunks, time.Since(start).Truncate(time.Millisecond))

	p.Section("3. VERIFICATION")
	for _, c := range verify.Verify(ctx, repo,
		verify.Check{Table: cfg.ZonesTable, Expected: zones},
		verify.Check{Table: cfg.TripsTable, Expected: res.Read},
	) {
		switch {
		case c.Err != nil:
			p.Printf("%s: count failed: %v\n", c.Table, c.Err)
		case c.Match:
			p.Printf("%s: %d rows\n", c.Table, c.Rows)
		default:
			p.Printf("%s: %d rows (expected %d)\n", c.Table, c.Rows, c.Expected)
		}
	}

	p.Println("")
	p.Println("DATA LOADING COMPLETE!")
	p.Rule()
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
