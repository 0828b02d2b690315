// Package config centralizes process configuration for the nytaxi binaries.
// Every tunable is a flag whose default is seeded from an environment
// variable (12-factor). An optional dotenv file (-env-file or ENV_FILE) is
// layered under the real environment.
//
// Typical usage:
//
//	cfg, err := config.Load()
//
// For tests, prefer LoadFromArgs to keep them hermetic:
//
//	fs := flag.NewFlagSet("test", flag.ContinueOnError)
//	getenv := func(k string) string { return testEnv[k] }
//	cfg, err := config.LoadFromArgs(fs, getenv, []string{"-chunk_size=100"})
package config

import (
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults shared by the binaries.
const (
	DefaultChunkSize       = 5000
	DefaultDateColumn      = "lpep_pickup_datetime"
	DefaultZonesTable      = "taxi_zones"
	DefaultTripsTable      = "green_taxi_trips"
	DefaultRowCountBaseURL = "https://github.com/DataTalksClub/nyc-tlc-data/releases/download"
	DefaultRowCountTimeout = 300 * time.Second
)

// Config holds all process configuration derived from flags, environment
// variables and an optional dotenv file.
type Config struct {
	// Inputs.
	ZonesCSV     string
	TripsParquet string

	// Destination. For postgres the DSN may be built from the discrete parts.
	StorageKind string
	DSN         string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	ZonesTable  string
	TripsTable  string

	// Trip loader.
	ChunkSize  int
	DateColumn string

	// Row-count aggregator.
	RowCountBaseURL string
	RowCountTimeout time.Duration
	RunConcurrency  int

	// Metrics: "none", "prompush" or "datadog".
	MetricsBackend string
	MetricsJob     string
	PushgatewayURL string
	DogStatsDAddr  string

	EnvFile string
}

// LoadFromArgs defines flags on fs, seeds each default from getenv (falling
// back to the dotenv file named by -env-file or ENV_FILE), then parses args.
//
// Precedence, highest first: explicit flag, environment, dotenv file,
// built-in default.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (*Config, error) {
	envFile := scanEnvFile(args)
	if envFile == "" {
		envFile = getenv("ENV_FILE")
	}
	fileEnv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("config: read env file %s: %w", envFile, err)
		}
		fileEnv = m
	}
	lookup := func(k string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return fileEnv[k]
	}

	envOrDefaultFn := func(k, d string) string {
		if v := lookup(k); v != "" {
			return v
		}
		return d
	}
	intEnvOrDefaultFn := func(k string, d int) int {
		if v := lookup(k); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				return i
			}
		}
		return d
	}
	durationEnvOrDefaultFn := func(k string, d time.Duration) time.Duration {
		if v := lookup(k); v != "" {
			if dur, err := time.ParseDuration(v); err == nil {
				return dur
			}
		}
		return d
	}

	cfg := &Config{}

	fs.StringVar(&cfg.EnvFile, "env-file", envFile, "Optional dotenv file layered under the environment")

	fs.StringVar(&cfg.ZonesCSV, "zones_csv", envOrDefaultFn("ZONES_CSV", "data/taxi_zone_lookup.csv"), "Path to the taxi zone lookup CSV")
	fs.StringVar(&cfg.TripsParquet, "trips_parquet", envOrDefaultFn("TRIPS_PARQUET", "data/green_tripdata_2025-11.parquet"), "Path to the trip Parquet file")

	fs.StringVar(&cfg.StorageKind, "storage", envOrDefaultFn("STORAGE_KIND", "postgres"), "Destination backend: postgres, sqlite, mssql or mysql")
	fs.StringVar(&cfg.DSN, "dsn", lookup("DB_DSN"), "Full DSN (required for non-postgres backends)")
	fs.StringVar(&cfg.DBUser, "db_user", envOrDefaultFn("DB_USER", "postgres"), "DB user")
	fs.StringVar(&cfg.DBPassword, "db_password", envOrDefaultFn("DB_PASSWORD", "root"), "DB password")
	fs.StringVar(&cfg.DBHost, "db_host", envOrDefaultFn("DB_HOST", "localhost"), "DB host")
	fs.StringVar(&cfg.DBPort, "db_port", envOrDefaultFn("DB_PORT", "5432"), "DB port")
	fs.StringVar(&cfg.DBName, "db_name", envOrDefaultFn("DB_NAME", "ny_taxi"), "DB name")
	fs.StringVar(&cfg.ZonesTable, "zones_table", envOrDefaultFn("ZONES_TABLE", DefaultZonesTable), "Destination table for zones")
	fs.StringVar(&cfg.TripsTable, "trips_table", envOrDefaultFn("TRIPS_TABLE", DefaultTripsTable), "Destination table for trips")

	fs.IntVar(&cfg.ChunkSize, "chunk_size", intEnvOrDefaultFn("CHUNK_SIZE", DefaultChunkSize), "Rows per trip chunk")
	fs.StringVar(&cfg.DateColumn, "date_column", envOrDefaultFn("DATE_COLUMN", DefaultDateColumn), "Timestamp column whose range is logged")

	fs.StringVar(&cfg.RowCountBaseURL, "rowcount_base_url", envOrDefaultFn("ROWCOUNT_BASE_URL", DefaultRowCountBaseURL), "Base URL of the monthly CSV releases")
	fs.DurationVar(&cfg.RowCountTimeout, "rowcount_timeout", durationEnvOrDefaultFn("ROWCOUNT_TIMEOUT", DefaultRowCountTimeout), "Per-download timeout")
	fs.IntVar(&cfg.RunConcurrency, "concurrency", intEnvOrDefaultFn("RUN_CONCURRENCY", 2), "Max concurrent DAG runs in batch mode")

	fs.StringVar(&cfg.MetricsBackend, "metrics-backend", envOrDefaultFn("METRICS_BACKEND", "none"), "Metrics backend: none, prompush or datadog")
	fs.StringVar(&cfg.MetricsJob, "metrics-job", envOrDefaultFn("METRICS_JOB", "nytaxi"), "Job label for pushed metrics")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway-url", lookup("PUSHGATEWAY_URL"), "Prometheus Pushgateway base URL")
	fs.StringVar(&cfg.DogStatsDAddr, "dogstatsd-addr", envOrDefaultFn("DOGSTATSD_ADDR", "127.0.0.1:8125"), "DogStatsD address")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is the production entry point: flag.CommandLine, os.Getenv, os.Args.
func Load() (*Config, error) {
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}

// ResolvedDSN returns DSN when set. For postgres without a DSN it builds a
// URL from the discrete parts.
func (c *Config) ResolvedDSN() string {
	if c.DSN != "" || c.StorageKind != "postgres" {
		return c.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return u.String()
}

// scanEnvFile finds -env-file/--env-file in args before flags are defined,
// since its contents seed the other defaults.
func scanEnvFile(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "env-file="); ok {
			return v
		}
		if name == "env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
