package mysql

import (
	"context"
	"strings"
	"testing"

	"nytaxi/internal/storage"
)

func TestMySQLRegistrationUsesNewRepositoryHook(t *testing.T) {
	orig := newRepository
	defer func() { newRepository = orig }()

	var gotCfg Config
	closed := false
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		gotCfg = cfg
		return &Repository{}, func() { closed = true }, nil
	}

	cfg := storage.Config{Kind: "mysql", DSN: "root:root@tcp(localhost:3306)/ny_taxi"}
	repo, err := storage.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	if gotCfg.DSN != cfg.DSN {
		t.Errorf("DSN = %q, want %q", gotCfg.DSN, cfg.DSN)
	}
	repo.Close()
	if !closed {
		t.Fatal("Close did not reach closeFn")
	}
}

func TestNewRepository_BadDSN(t *testing.T) {
	t.Parallel()

	_, _, err := NewRepository(context.Background(), Config{DSN: "not a dsn"})
	if err == nil || !strings.Contains(err.Error(), "mysql dsn") {
		t.Fatalf("err = %v, want mysql dsn error", err)
	}
}

func TestBuildInsert(t *testing.T) {
	t.Parallel()

	stmt, args, err := buildInsert("ny_taxi.taxi_zones", []string{"LocationID", "Zone"}, [][]any{
		{int64(1), "Newark Airport"},
		{int64(2), "Jamaica Bay"},
	})
	if err != nil {
		t.Fatalf("buildInsert: %v", err)
	}
	want := "INSERT INTO `ny_taxi`.`taxi_zones` (`LocationID`, `Zone`) VALUES (?, ?), (?, ?)"
	if stmt != want {
		t.Fatalf("stmt = %q, want %q", stmt, want)
	}
	if len(args) != 4 || args[2] != int64(2) {
		t.Fatalf("args = %v", args)
	}

	if _, _, err := buildInsert("t", []string{"a", "b"}, [][]any{{1}}); err == nil {
		t.Fatal("expected row length error")
	}
}

func TestDialect(t *testing.T) {
	t.Parallel()

	if got := dialect.DayOf("`lpep_pickup_datetime`"); got != "DATE_FORMAT(`lpep_pickup_datetime`, '%Y-%m-%d')" {
		t.Fatalf("DayOf = %q", got)
	}
	if got := backtick("we`ird"); got != "`we``ird`" {
		t.Fatalf("backtick = %q", got)
	}
	if MapType("timestamp") != "DATETIME(6)" || MapType("whatever") != "TEXT" {
		t.Fatal("MapType mismatch")
	}
}
