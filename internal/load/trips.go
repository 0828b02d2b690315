package load

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"nytaxi/internal/frame"
	"nytaxi/internal/metrics"
	"nytaxi/internal/storage"
)

// ParquetSource opens a seekable Parquet file.
type ParquetSource interface {
	OpenFile(ctx context.Context) (*os.File, error)
}

// TripLoader writes a trip record set to Table in chunks of ChunkSize rows.
// The first chunk replaces the table; later chunks append.
type TripLoader struct {
	Repo      storage.Repository
	Table     string
	ChunkSize int
	// DateColumn names the timestamp column whose range is reported. Optional.
	DateColumn string
}

// TripResult summarizes one load.
type TripResult struct {
	Read    int64
	Written int64
	Chunks  int

	// DateMin/DateMax are set when HasDates is true.
	HasDates bool
	DateMin  time.Time
	DateMax  time.Time
}

// Run reads the whole Parquet file from src into memory and loads it.
func (l *TripLoader) Run(ctx context.Context, src ParquetSource) (TripResult, error) {
	fh, err := src.OpenFile(ctx)
	if err != nil {
		return TripResult{}, fmt.Errorf("load trips: %w", err)
	}
	defer fh.Close()

	f, err := frame.DecodeParquet(ctx, fh)
	if err != nil {
		return TripResult{}, fmt.Errorf("load trips: %w", err)
	}
	return l.LoadFrame(ctx, f)
}

// LoadFrame loads f. A failed chunk stops the load; chunks already written
// stay in the table. An empty frame still replaces the table.
func (l *TripLoader) LoadFrame(ctx context.Context, f *frame.Frame) (res TripResult, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(Job, "trips", err, time.Since(start)) }()

	if l.ChunkSize <= 0 {
		return res, fmt.Errorf("load trips: chunk size must be > 0, got %d", l.ChunkSize)
	}

	res.Read = int64(f.Len())
	log.Printf("trips: read rows=%d columns=%d", f.Len(), len(f.Columns))
	if l.DateColumn != "" {
		res.DateMin, res.DateMax, res.HasDates = f.TimeRange(l.DateColumn)
		if res.HasDates {
			log.Printf("trips: date_range column=%s min=%s max=%s", l.DateColumn, res.DateMin, res.DateMax)
		}
	}

	if f.Len() == 0 {
		if _, err := storage.WriteFrame(ctx, l.Repo, l.Table, f, storage.Replace); err != nil {
			return res, fmt.Errorf("load trips: %w", err)
		}
		return res, nil
	}

	res.Written, err = storage.LoadChunks(ctx, f, l.ChunkSize, func(ctx context.Context, idx int, chunk *frame.Frame) (int64, error) {
		mode := storage.Append
		if idx == 0 {
			mode = storage.Replace
		}
		n, err := storage.WriteFrame(ctx, l.Repo, l.Table, chunk, mode)
		if err != nil {
			return n, err
		}
		res.Chunks++
		metrics.RecordChunks(Job, 1)
		metrics.RecordRows(Job, "loaded", n)
		return n, nil
	})
	if err != nil {
		return res, fmt.Errorf("load trips: %w", err)
	}
	log.Printf("trips: loaded table=%s rows=%d chunks=%d elapsed=%s", l.Table, res.Written, res.Chunks, time.Since(start).Truncate(time.Millisecond))
	return res, nil
}
