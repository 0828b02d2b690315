package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{24648499, "24,648,499"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Fatalf("Count(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	p.Header("MODULE 1 HOMEWORK - DATA LOADING")
	p.Section("VERIFICATION")
	p.Printf("taxi_zones: %d rows\n", 265)
	p.Printf("green_taxi_trips: %d rows\n", 46912)
	p.Banner("TOTAL ROWS FOR YELLOW 2020: 24,648,499")

	rule := strings.Repeat("=", Width)
	want := strings.Join([]string{
		rule,
		"MODULE 1 HOMEWORK - DATA LOADING",
		rule,
		"",
		"VERIFICATION",
		strings.Repeat("-", Width),
		"taxi_zones: 265 rows",
		"green_taxi_trips: 46,912 rows",
		rule,
		"TOTAL ROWS FOR YELLOW 2020: 24,648,499",
		rule,
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("output =\n%s\nwant\n%s", got, want)
	}
}
