package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"nytaxi/internal/frame"
)

// ChunkFn writes one chunk. index is 0 for the first chunk.
type ChunkFn func(ctx context.Context, index int, chunk *frame.Frame) (int64, error)

// LoadChunks walks f in contiguous slices [i, min(i+chunkSize, Len())) and
// calls fn for each, in order. It stops at the first error and returns the
// rows written so far; earlier chunks are not undone.
//
// Progress is logged after every successful chunk.
func LoadChunks(ctx context.Context, f *frame.Frame, chunkSize int, fn ChunkFn) (int64, error) {
	if chunkSize <= 0 {
		return 0, fmt.Errorf("chunkSize must be > 0")
	}
	if fn == nil {
		return 0, fmt.Errorf("chunk fn must not be nil")
	}

	var (
		total       int64
		start       = time.Now()
		lastFlushTS = start
		lastTotal   int64
	)

	for i, idx := 0, 0; i < f.Len(); i, idx = i+chunkSize, idx+1 {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, err := fn(ctx, idx, f.Slice(i, i+chunkSize))
		total += n
		if err != nil {
			log.Printf("loader: chunk failed chunk=%d after=%d total=%d err=%v", idx+1, n, total, err)
			return total, err
		}

		now := time.Now()
		sinceLast := now.Sub(lastFlushTS)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(total-lastTotal) / sinceLast.Seconds()
		}
		log.Printf(
			"batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s since_last=%s",
			idx+1,
			rps,
			n,
			total,
			now.Sub(start).Truncate(time.Millisecond),
			sinceLast.Truncate(time.Millisecond),
		)
		lastFlushTS = now
		lastTotal = total
	}

	return total, nil
}
