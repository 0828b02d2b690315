package ddl

import (
	"strconv"
	"strings"
	"testing"
)

// testDialect is an ANSI-ish dialect used to exercise the shared builder.
var testDialect = Dialect{
	Name:       "test",
	QuoteIdent: DoubleQuote,
	MapType: func(kind string) string {
		switch kind {
		case KindInt:
			return "BIGINT"
		case KindFloat:
			return "DOUBLE PRECISION"
		default:
			return "TEXT"
		}
	},
}

// TestBuildCreateTableSQL verifies that BuildCreateTableSQL generates the
// expected CREATE TABLE statements and surfaces appropriate errors for invalid
// inputs.
func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		def         TableDef
		ifNotExists bool
		wantSQL     string
		errContains string
	}{
		{
			name:        "empty FQN returns error",
			def:         TableDef{FQN: "", Columns: []ColumnDef{{Name: "id", SQLType: "INT"}}},
			errContains: "table FQN must not be empty",
		},
		{
			name:        "no columns returns error",
			def:         TableDef{FQN: "public.t"},
			errContains: "at least one column is required",
		},
		{
			name:        "column with empty name returns error",
			def:         TableDef{FQN: "t", Columns: []ColumnDef{{Name: "", SQLType: "INT"}}},
			errContains: "column with empty name",
		},
		{
			name:        "column with empty type returns error",
			def:         TableDef{FQN: "t", Columns: []ColumnDef{{Name: "id", SQLType: ""}}},
			errContains: "missing SQLType",
		},
		{
			name:    "nullable column",
			def:     TableDef{FQN: "t", Columns: []ColumnDef{{Name: "id", SQLType: "INT", Nullable: true}}},
			wantSQL: "CREATE TABLE \"t\" (\n  \"id\" INT\n);",
		},
		{
			name: "primary key forces NOT NULL",
			def: TableDef{FQN: "t", Columns: []ColumnDef{
				{Name: "id", SQLType: "INT", Nullable: true, PrimaryKey: true},
				{Name: "name", SQLType: "TEXT", Nullable: true},
			}},
			wantSQL: "CREATE TABLE \"t\" (\n  \"id\" INT NOT NULL,\n  \"name\" TEXT,\n  PRIMARY KEY (\"id\")\n);",
		},
		{
			name: "default expression is raw SQL",
			def: TableDef{FQN: "t", Columns: []ColumnDef{
				{Name: "flag", SQLType: "BOOLEAN", Default: "  false  "},
			}},
			wantSQL: "CREATE TABLE \"t\" (\n  \"flag\" BOOLEAN NOT NULL DEFAULT false\n);",
		},
		{
			name:        "schema qualified with IF NOT EXISTS",
			def:         TableDef{FQN: " public.taxi_zones ", Columns: []ColumnDef{{Name: "Zone", SQLType: "TEXT", Nullable: true}}},
			ifNotExists: true,
			wantSQL:     "CREATE TABLE IF NOT EXISTS \"public\".\"taxi_zones\" (\n  \"Zone\" TEXT\n);",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := testDialect.BuildCreateTableSQL(tt.def, tt.ifNotExists)
			if tt.errContains != "" {
				if err == nil {
					t.Fatalf("BuildCreateTableSQL() error = nil, want %q", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("BuildCreateTableSQL() error = %q, want substring %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildCreateTableSQL() unexpected error = %v", err)
			}
			if got != tt.wantSQL {
				t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, tt.wantSQL)
			}
		})
	}
}

// TestBuildCreateTableSQL_GuardCreate checks that dialects without
// IF NOT EXISTS get their own guard around the plain statement.
func TestBuildCreateTableSQL_GuardCreate(t *testing.T) {
	t.Parallel()

	d := testDialect
	d.GuardCreate = func(fqn, create string) string {
		return "IF OBJECT_ID(N'" + fqn + "', N'U') IS NULL " + create + ";"
	}

	got, err := d.BuildCreateTableSQL(TableDef{
		FQN:     "dbo.t",
		Columns: []ColumnDef{{Name: "id", SQLType: "BIGINT", Nullable: true}},
	}, true)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}
	want := "IF OBJECT_ID(N'dbo.t', N'U') IS NULL CREATE TABLE \"dbo\".\"t\" (\n  \"id\" BIGINT\n);"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestBuildDropTableSQL(t *testing.T) {
	t.Parallel()

	got, err := testDialect.BuildDropTableSQL("public.green_taxi_trips")
	if err != nil {
		t.Fatalf("BuildDropTableSQL: %v", err)
	}
	if want := `DROP TABLE IF EXISTS "public"."green_taxi_trips";`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if _, err := testDialect.BuildDropTableSQL("  "); err == nil {
		t.Fatal("expected error for empty FQN")
	}
}

func TestFromKinds(t *testing.T) {
	t.Parallel()

	td := FromKinds("trips",
		[]string{"VendorID", "trip_distance", "store_and_fwd_flag"},
		[]string{KindInt, KindFloat},
		testDialect.MapType,
	)
	if td.FQN != "trips" {
		t.Fatalf("FQN = %q", td.FQN)
	}
	want := []string{"BIGINT", "DOUBLE PRECISION", "TEXT"}
	for i, c := range td.Columns {
		if c.SQLType != want[i] {
			t.Fatalf("column %d (%s) type = %q, want %q", i, c.Name, c.SQLType, want[i])
		}
		if !c.Nullable {
			t.Fatalf("column %s must be nullable", c.Name)
		}
	}
}

// benchmarkSink prevents the compiler from optimizing away benchmark results.
var benchmarkSink string

// BenchmarkBuildCreateTableSQL_WideSchema simulates a wide trip table.
func BenchmarkBuildCreateTableSQL_WideSchema(b *testing.B) {
	cols := make([]ColumnDef, 0, 64)
	for i := 0; i < 64; i++ {
		cols = append(cols, ColumnDef{Name: "col_" + strconv.Itoa(i), SQLType: "TEXT", Nullable: true})
	}
	def := TableDef{FQN: "large_table", Columns: cols}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sql, err := testDialect.BuildCreateTableSQL(def, false)
		if err != nil {
			b.Fatalf("BuildCreateTableSQL() error = %v", err)
		}
		benchmarkSink = sql
	}
}
