// Package load moves the homework source files into the destination
// database: the zone lookup CSV in one write and the trip Parquet file in
// fixed-size chunks.
package load

import (
	"context"
	"fmt"
	"log"
	"time"

	"nytaxi/internal/datasource"
	"nytaxi/internal/frame"
	"nytaxi/internal/metrics"
	"nytaxi/internal/storage"
)

// Job is the metrics job label used by the loaders.
const Job = "load"

// LoadZones reads the whole lookup CSV from src and replaces table with it.
// It returns the number of rows written.
func LoadZones(ctx context.Context, src datasource.Source, repo storage.Repository, table string) (n int64, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(Job, "zones", err, time.Since(start)) }()

	rc, err := src.Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("load zones: %w", err)
	}
	defer rc.Close()

	f, err := frame.ReadZonesCSV(rc)
	if err != nil {
		return 0, fmt.Errorf("load zones: %w", err)
	}
	log.Printf("zones: read rows=%d", f.Len())

	n, err = storage.WriteFrame(ctx, repo, table, f, storage.Replace)
	if err != nil {
		return n, fmt.Errorf("load zones: %w", err)
	}
	metrics.RecordRows(Job, "loaded", n)
	log.Printf("zones: loaded table=%s rows=%d", table, n)
	return n, nil
}
