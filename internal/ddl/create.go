// Package ddl defines a small, backend-agnostic model for SQL DDL and a
// Dialect type that renders CREATE/DROP statements from that model.
//
// Backends (internal/storage/postgres, sqlite, mssql, mysql) declare one
// Dialect value each: how identifiers are quoted, how logical kinds map to
// SQL types, and how "create only if missing" is spelled. Everything else
// (column rendering, primary keys, validation) is shared here.
package ddl

import (
	"fmt"
	"strings"
)

// Dialect captures the per-backend differences needed to render DDL.
type Dialect struct {
	// Name is used in error messages, e.g. "postgres ddl: ...".
	Name string

	// QuoteIdent quotes a single identifier segment.
	QuoteIdent func(id string) string

	// MapType maps a logical kind (KindInt, KindText, ...) to a SQL type.
	MapType func(kind string) string

	// GuardCreate, when set, wraps a plain CREATE TABLE statement so that it
	// only runs if the table is missing. When nil, the builder emits
	// CREATE TABLE IF NOT EXISTS.
	GuardCreate func(fqn, create string) string

	// DropIfExists, when set, renders the drop statement. When nil, the
	// builder emits DROP TABLE IF EXISTS.
	DropIfExists func(quotedFQN string) string
}

// QuoteFQN quotes a possibly schema-qualified name like "public.users" to
// `"public"."users"` using the dialect's identifier quoting. Empty segments
// are ignored.
func (d Dialect) QuoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, d.QuoteIdent(p))
	}
	return strings.Join(out, ".")
}

// BuildCreateTableSQL renders a CREATE TABLE statement for t.
//
// Rules:
//   - t.FQN must be non-empty.
//   - Each column must have a non-empty Name and SQLType.
//   - Primary-key columns are always rendered as NOT NULL.
//   - PRIMARY KEY is rendered as a separate constraint clause.
//   - With ifNotExists the statement is a no-op when the table exists.
func (d Dialect) BuildCreateTableSQL(t TableDef, ifNotExists bool) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s ddl: table FQN must not be empty", d.Name)
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s ddl: at least one column is required", d.Name)
	}

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("%s ddl: column with empty name in table %s", d.Name, fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("%s ddl: column %s missing SQLType", d.Name, name)
		}

		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)

		if !c.Nullable || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			// default is raw SQL, no quoting here
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}

		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, d.QuoteIdent(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	body := strings.Join(cols, ",\n  ")
	quoted := d.QuoteFQN(fqn)

	if !ifNotExists {
		return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", quoted, body), nil
	}
	if d.GuardCreate != nil {
		return d.GuardCreate(fqn, fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", quoted, body)), nil
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);", quoted, body), nil
}

// BuildDropTableSQL renders a statement that drops fqn if it exists.
func (d Dialect) BuildDropTableSQL(fqn string) (string, error) {
	if strings.TrimSpace(fqn) == "" {
		return "", fmt.Errorf("%s ddl: table FQN must not be empty", d.Name)
	}
	quoted := d.QuoteFQN(fqn)
	if d.DropIfExists != nil {
		return d.DropIfExists(quoted), nil
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", quoted), nil
}

// DoubleQuote quotes an identifier the ANSI way, escaping embedded quotes:
//
//	DoubleQuote(`pcv`)        => `"pcv"`
//	DoubleQuote(`weird"name`) => `"weird""name"`
func DoubleQuote(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
