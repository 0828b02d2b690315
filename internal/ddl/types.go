package ddl

// Logical column kinds shared by record sets and backends. Backends map each
// kind to a concrete SQL type through their own MapType.
const (
	KindInt       = "bigint"
	KindFloat     = "float"
	KindBool      = "bool"
	KindTimestamp = "timestamp"
	KindDate      = "date"
	KindText      = "text"
	KindBytes     = "bytes"
)

// ColumnDef describes a single column in a table definition produced or
// consumed by ddl. It intentionally uses simple, database-agnostic fields.
//
// Fields:
//   - Name: logical column name (unquoted; quoting/escaping happens at render time)
//   - SQLType: target SQL type (e.g., TEXT, BIGINT, TIMESTAMPTZ)
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key (not used by all generators)
//   - Default: raw default expression (e.g., 'anon', CURRENT_TIMESTAMP)
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// TableDef holds the fully-qualified table name (FQN) and an ordered list of
// columns. The FQN is expected in dotted form (e.g., "schema.table") and will
// be quoted/escaped by renderers as needed.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// FromKinds builds a TableDef for table whose columns are names[i] with the
// logical kind kinds[i], mapped through mapType. All columns are nullable:
// record sets inherit their schema from the source file and carry no
// constraints of their own.
func FromKinds(table string, names, kinds []string, mapType func(string) string) TableDef {
	cols := make([]ColumnDef, 0, len(names))
	for i, name := range names {
		kind := KindText
		if i < len(kinds) {
			kind = kinds[i]
		}
		cols = append(cols, ColumnDef{
			Name:     name,
			SQLType:  mapType(kind),
			Nullable: true,
		})
	}
	return TableDef{FQN: table, Columns: cols}
}
