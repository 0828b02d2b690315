package load

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"nytaxi/internal/datasource/file"
	"nytaxi/internal/ddl"
	"nytaxi/internal/frame"
	"nytaxi/internal/storage"
	_ "nytaxi/internal/storage/sqlite"
)

const zoneCSV = `"LocationID","Borough","Zone","service_zone"
1,"EWR","Newark Airport","EWR"
74,"Manhattan","East Harlem North","Boro Zone"
75,"Manhattan","East Harlem South","Boro Zone"
`

var day0 = time.Date(2025, 11, 1, 0, 5, 0, 0, time.UTC)

func openRepo(t *testing.T) storage.Repository {
	t.Helper()
	repo, err := storage.New(context.Background(), storage.Config{Kind: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	t.Cleanup(repo.Close)
	return repo
}

func count(t *testing.T, repo storage.Repository, table string) int64 {
	t.Helper()
	n, err := storage.CountRows(context.Background(), repo, table)
	if err != nil {
		t.Fatalf("CountRows(%s): %v", table, err)
	}
	return n
}

// outOfOrder counts rows whose insertion position differs from their id.
func outOfOrder(t *testing.T, repo storage.Repository, table string) int64 {
	t.Helper()
	var n int64
	if err := repo.QueryRow(context.Background(), `SELECT COUNT(*) FROM "`+table+`" WHERE rowid <> "id"`).Scan(&n); err != nil {
		t.Fatalf("order query: %v", err)
	}
	return n
}

// tripFrame returns n rows with ids 1..n and one pickup per hour.
func tripFrame(n int) *frame.Frame {
	f := frame.New(
		frame.Column{Name: "id", Kind: ddl.KindInt},
		frame.Column{Name: "lpep_pickup_datetime", Kind: ddl.KindTimestamp},
		frame.Column{Name: "trip_distance", Kind: ddl.KindFloat},
	)
	for i := 0; i < n; i++ {
		f.Rows = append(f.Rows, []any{int64(i + 1), day0.Add(time.Duration(i) * time.Hour), float64(i) / 10})
	}
	return f
}

func TestLoadZones_ReplaceIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := openRepo(t)

	path := filepath.Join(t.TempDir(), "taxi_zone_lookup.csv")
	if err := os.WriteFile(path, []byte(zoneCSV), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	src := file.NewLocal(path)

	for i := 0; i < 2; i++ {
		n, err := LoadZones(ctx, src, repo, "taxi_zones")
		if err != nil {
			t.Fatalf("LoadZones #%d: %v", i+1, err)
		}
		if n != 3 {
			t.Fatalf("LoadZones #%d wrote %d, want 3", i+1, n)
		}
	}
	if got := count(t, repo, "taxi_zones"); got != 3 {
		t.Fatalf("taxi_zones count = %d, want 3 after replay", got)
	}

	var zone string
	if err := repo.QueryRow(ctx, `SELECT "Zone" FROM "taxi_zones" WHERE "LocationID" = 74`).Scan(&zone); err != nil {
		t.Fatalf("zone query: %v", err)
	}
	if zone != "East Harlem North" {
		t.Fatalf("zone = %q", zone)
	}
}

func TestLoadZones_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := openRepo(t)

	if _, err := LoadZones(ctx, file.NewLocal(filepath.Join(t.TempDir(), "missing.csv")), repo, "taxi_zones"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(bad, []byte("LocationID,Borough,Zone,service_zone\nnot-a-number,x,y,z\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if _, err := LoadZones(ctx, file.NewLocal(bad), repo, "taxi_zones"); err == nil {
		t.Fatal("malformed CSV should fail")
	}
}

func TestTripLoader_ChunksPreserveCountAndOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rows       int
		chunk      int
		wantChunks int
	}{
		{"not a multiple of chunk size", 23, 5, 5},
		{"exact multiple", 20, 5, 4},
		{"single chunk", 4, 5000, 1},
		{"chunk of one", 3, 1, 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := openRepo(t)
			l := &TripLoader{Repo: repo, Table: "green_taxi_trips", ChunkSize: tt.chunk}

			res, err := l.LoadFrame(context.Background(), tripFrame(tt.rows))
			if err != nil {
				t.Fatalf("LoadFrame: %v", err)
			}
			if res.Read != int64(tt.rows) || res.Written != int64(tt.rows) || res.Chunks != tt.wantChunks {
				t.Fatalf("result = %+v, want %d rows in %d chunks", res, tt.rows, tt.wantChunks)
			}
			if got := count(t, repo, "green_taxi_trips"); got != int64(tt.rows) {
				t.Fatalf("count = %d, want %d", got, tt.rows)
			}
			if n := outOfOrder(t, repo, "green_taxi_trips"); n != 0 {
				t.Fatalf("%d rows out of source order", n)
			}
		})
	}
}

func TestTripLoader_ReplayReplacesPreviousLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := openRepo(t)
	l := &TripLoader{Repo: repo, Table: "green_taxi_trips", ChunkSize: 4}

	for i := 0; i < 2; i++ {
		if _, err := l.LoadFrame(ctx, tripFrame(10)); err != nil {
			t.Fatalf("LoadFrame #%d: %v", i+1, err)
		}
	}
	if got := count(t, repo, "green_taxi_trips"); got != 10 {
		t.Fatalf("count after replay = %d, want 10", got)
	}
}

func TestTripLoader_EmptyFrameReplacesTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := openRepo(t)
	l := &TripLoader{Repo: repo, Table: "green_taxi_trips", ChunkSize: 4}

	if _, err := l.LoadFrame(ctx, tripFrame(6)); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}
	res, err := l.LoadFrame(ctx, tripFrame(0))
	if err != nil {
		t.Fatalf("LoadFrame(empty): %v", err)
	}
	if res.Chunks != 0 || res.Written != 0 {
		t.Fatalf("result = %+v", res)
	}
	if got := count(t, repo, "green_taxi_trips"); got != 0 {
		t.Fatalf("count = %d, want empty table", got)
	}
}

// failingRepo fails the nth CopyFrom call.
type failingRepo struct {
	storage.Repository
	failAt int
	calls  int
}

func (f *failingRepo) CopyFrom(ctx context.Context, table string, cols []string, rows [][]any) (int64, error) {
	f.calls++
	if f.calls == f.failAt {
		return 0, errors.New("connection reset")
	}
	return f.Repository.CopyFrom(ctx, table, cols, rows)
}

func TestTripLoader_FailedChunkStopsAndKeepsEarlierChunks(t *testing.T) {
	t.Parallel()
	repo := openRepo(t)
	l := &TripLoader{Repo: &failingRepo{Repository: repo, failAt: 3}, Table: "green_taxi_trips", ChunkSize: 5}

	res, err := l.LoadFrame(context.Background(), tripFrame(23))
	if err == nil {
		t.Fatal("expected chunk failure")
	}
	if res.Chunks != 2 || res.Written != 10 {
		t.Fatalf("result = %+v, want 2 chunks / 10 rows", res)
	}
	if got := count(t, repo, "green_taxi_trips"); got != 10 {
		t.Fatalf("count = %d, want 10 committed rows", got)
	}
}

func TestTripLoader_RejectsBadChunkSize(t *testing.T) {
	t.Parallel()
	l := &TripLoader{Repo: openRepo(t), Table: "t", ChunkSize: 0}
	if _, err := l.LoadFrame(context.Background(), tripFrame(1)); err == nil {
		t.Fatal("expected error for chunk size 0")
	}
}

func writeTripParquet(t *testing.T, rows int) string {
	t.Helper()

	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "lpep_pickup_datetime", Type: arrow.FixedWidthTypes.Timestamp_us, Nullable: true},
	}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	for i := 0; i < rows; i++ {
		b.Field(0).(*array.Int64Builder).Append(int64(i + 1))
		b.Field(1).(*array.TimestampBuilder).Append(arrow.Timestamp(day0.Add(time.Duration(i) * 24 * time.Hour).UnixMicro()))
	}
	rec := b.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	var buf bytes.Buffer
	if err := pqarrow.WriteTable(tbl, &buf, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	path := filepath.Join(t.TempDir(), "green_tripdata_2025-11.parquet")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	return path
}

func TestTripLoader_RunFromParquet(t *testing.T) {
	t.Parallel()
	repo := openRepo(t)
	l := &TripLoader{Repo: repo, Table: "green_taxi_trips", ChunkSize: 3, DateColumn: "lpep_pickup_datetime"}

	res, err := l.Run(context.Background(), file.NewLocal(writeTripParquet(t, 7)))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Written != 7 || res.Chunks != 3 {
		t.Fatalf("result = %+v", res)
	}
	if !res.HasDates || !res.DateMin.Equal(day0) || !res.DateMax.Equal(day0.Add(6*24*time.Hour)) {
		t.Fatalf("date range = %v..%v (ok=%v)", res.DateMin, res.DateMax, res.HasDates)
	}
	if n := outOfOrder(t, repo, "green_taxi_trips"); n != 0 {
		t.Fatalf("%d rows out of source order", n)
	}
}

func TestTripLoader_RunMissingFile(t *testing.T) {
	t.Parallel()
	l := &TripLoader{Repo: openRepo(t), Table: "t", ChunkSize: 3}
	_, err := l.Run(context.Background(), file.NewLocal(filepath.Join(t.TempDir(), "nope.parquet")))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}
