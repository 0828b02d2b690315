// Package rowcount downloads monthly NYC taxi CSV releases and totals their
// data rows. A month that cannot be fetched or read is recorded as skipped
// and contributes nothing; the remaining months are still processed.
package rowcount

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"nytaxi/internal/datasource/httpds"
	"nytaxi/internal/metrics"
)

// Job is the metrics job label.
const Job = "rowcount"

// Request selects the files to count. Month 0 means the whole year; a month
// outside 1..12 is recorded as skipped without a download.
type Request struct {
	TaxiType string
	Year     int
	Month    int
}

// Months returns the months to fetch, ascending.
func (r Request) Months() []int {
	if r.Month != 0 {
		return []int{r.Month}
	}
	out := make([]int, 12)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (r Request) validate() error {
	if strings.TrimSpace(r.TaxiType) == "" {
		return fmt.Errorf("rowcount: taxi type must not be empty")
	}
	if r.Year <= 0 {
		return fmt.Errorf("rowcount: invalid year %d", r.Year)
	}
	return nil
}

// FileName returns e.g. "yellow_tripdata_2020-01.csv".
func FileName(taxiType string, year, month int) string {
	return fmt.Sprintf("%s_tripdata_%d-%02d.csv", taxiType, year, month)
}

// MonthURL returns {base}/{taxiType}/{file name}.
func MonthURL(base, taxiType string, year, month int) string {
	return strings.TrimRight(base, "/") + "/" + taxiType + "/" + FileName(taxiType, year, month)
}

// MonthResult is the outcome for one month.
type MonthResult struct {
	Month int
	File  string
	URL   string

	Rows     int64
	Bytes    int64
	Checksum string // xxh3 of the body, hex

	Skipped bool
	Reason  string
}

// Result is the outcome of a Run.
type Result struct {
	Request
	Total  int64
	Months []MonthResult
}

// Skipped returns the months that contributed nothing.
func (r Result) Skipped() []MonthResult {
	var out []MonthResult
	for _, m := range r.Months {
		if m.Skipped {
			out = append(out, m)
		}
	}
	return out
}

// Counter fetches monthly files through Client.
type Counter struct {
	Client  *httpds.Client
	BaseURL string
	// TempDir holds downloads while they are counted; "" means os.TempDir.
	TempDir string
	// Log receives progress lines; nil means log.Default().
	Log *log.Logger
}

func (c *Counter) logger() *log.Logger {
	if c.Log != nil {
		return c.Log
	}
	return log.Default()
}

// Run counts every requested month in order. It returns an error only for an
// invalid request or a cancelled context; per-month failures are skipped.
func (c *Counter) Run(ctx context.Context, req Request) (Result, error) {
	lg := c.logger()
	res := Result{Request: req}
	if err := req.validate(); err != nil {
		return res, err
	}

	start := time.Now()
	for _, month := range req.Months() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		mr := c.countMonth(ctx, lg, req.TaxiType, req.Year, month)
		if mr.Skipped {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			lg.Printf("rowcount: skipped file=%s reason=%s", mr.File, mr.Reason)
			metrics.RecordMonth(req.TaxiType, "skipped")
		} else {
			lg.Printf("rowcount: counted file=%s rows=%d bytes=%d xxh3=%s", mr.File, mr.Rows, mr.Bytes, mr.Checksum)
			metrics.RecordMonth(req.TaxiType, "counted")
			metrics.RecordRows(Job, "counted", mr.Rows)
			res.Total += mr.Rows
		}
		res.Months = append(res.Months, mr)
	}

	lg.Printf("rowcount: done taxi_type=%s year=%d months=%d skipped=%d total=%d elapsed=%s",
		req.TaxiType, req.Year, len(res.Months), len(res.Skipped()), res.Total, time.Since(start).Truncate(time.Millisecond))
	return res, nil
}

func (c *Counter) countMonth(ctx context.Context, lg *log.Logger, taxiType string, year, month int) MonthResult {
	url := MonthURL(c.BaseURL, taxiType, year, month)
	mr := MonthResult{Month: month, File: FileName(taxiType, year, month), URL: url}
	if month < 1 || month > 12 {
		mr.Skipped = true
		mr.Reason = fmt.Sprintf("invalid month %d", month)
		return mr
	}
	lg.Printf("rowcount: downloading file=%s", mr.File)

	rows, size, sum, err := c.fetchAndCount(ctx, url)
	if err != nil {
		mr.Skipped = true
		mr.Reason = err.Error()
		return mr
	}
	mr.Rows, mr.Bytes, mr.Checksum = rows, size, sum
	return mr
}

// fetchAndCount downloads url into a temp file, hashing it on the way, then
// counts its data rows. The temp file is removed on every path.
func (c *Counter) fetchAndCount(ctx context.Context, url string) (rows, size int64, sum string, err error) {
	tmp, err := os.CreateTemp(c.TempDir, httpds.TempPattern(url))
	if err != nil {
		return 0, 0, "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	h := xxh3.New()
	size, err = c.Client.Download(ctx, url, io.MultiWriter(tmp, h))
	if err != nil {
		return 0, size, "", err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return 0, size, "", fmt.Errorf("rewind %s: %w", tmp.Name(), err)
	}

	adviseSequential(tmp)
	lines, err := CountLines(tmp)
	if err != nil {
		return 0, size, "", fmt.Errorf("count lines: %w", err)
	}
	return DataRows(lines), size, fmt.Sprintf("%016x", h.Sum64()), nil
}
