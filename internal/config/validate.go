package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"nytaxi/internal/storage"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is the flag name.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static checks over c without mutating it.
func Validate(c *Config) []Issue {
	var issues []Issue
	add := func(sev IssueSeverity, path, msg string) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: msg})
	}

	kind := strings.TrimSpace(c.StorageKind)
	switch {
	case kind == "":
		add(SeverityError, "storage", "storage kind must not be empty")
	default:
		if kinds := storage.ListKinds(); !slices.Contains(kinds, kind) {
			add(SeverityWarning, "storage", fmt.Sprintf("unknown storage kind %q; registered: %s", kind, strings.Join(kinds, ", ")))
		}
		if kind != "postgres" && strings.TrimSpace(c.DSN) == "" {
			add(SeverityError, "dsn", fmt.Sprintf("%s storage requires an explicit dsn", kind))
		}
	}

	if strings.TrimSpace(c.ZonesTable) == "" {
		add(SeverityError, "zones_table", "zones table must not be empty")
	}
	if strings.TrimSpace(c.TripsTable) == "" {
		add(SeverityError, "trips_table", "trips table must not be empty")
	}
	if c.ZonesTable != "" && c.ZonesTable == c.TripsTable {
		add(SeverityError, "trips_table", "zones and trips tables must differ")
	}

	if c.ChunkSize <= 0 {
		add(SeverityError, "chunk_size", "chunk size must be > 0")
	}
	if strings.TrimSpace(c.DateColumn) == "" {
		add(SeverityWarning, "date_column", "no date column; the loaded date range will not be logged")
	}

	if u, err := url.Parse(c.RowCountBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		add(SeverityError, "rowcount_base_url", fmt.Sprintf("base URL %q must be an absolute http(s) URL", c.RowCountBaseURL))
	}
	if c.RowCountTimeout <= 0 {
		add(SeverityError, "rowcount_timeout", "timeout must be > 0")
	}
	if c.RunConcurrency <= 0 {
		add(SeverityError, "concurrency", "concurrency must be > 0")
	}

	switch c.MetricsBackend {
	case "", "none":
	case "prompush":
		if strings.TrimSpace(c.PushgatewayURL) == "" {
			add(SeverityError, "pushgateway-url", "prompush backend requires a pushgateway URL")
		}
	case "datadog":
		if strings.TrimSpace(c.DogStatsDAddr) == "" {
			add(SeverityError, "dogstatsd-addr", "datadog backend requires a DogStatsD address")
		}
	default:
		add(SeverityError, "metrics-backend", fmt.Sprintf("unknown metrics backend %q", c.MetricsBackend))
	}

	return issues
}
