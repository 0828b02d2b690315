package sqlite

import (
	"nytaxi/internal/ddl"
	"nytaxi/internal/storage"
)

var dialect = storage.Dialect{
	Dialect: ddl.Dialect{
		Name:       "sqlite",
		QuoteIdent: ddl.DoubleQuote,
		MapType:    MapType,
	},
	DayOf: storage.CastDateText,
	First: "LIMIT 1",
}

// MapType maps a logical kind to a SQLite declared type. Timestamps keep a
// TIMESTAMP declaration so the driver scans them back into time.Time.
func MapType(kind string) string {
	switch kind {
	case ddl.KindInt:
		return "INTEGER"
	case ddl.KindFloat:
		return "REAL"
	case ddl.KindBool:
		return "BOOLEAN"
	case ddl.KindTimestamp:
		return "TIMESTAMP"
	case ddl.KindDate:
		return "DATE"
	case ddl.KindBytes:
		return "BLOB"
	default:
		return "TEXT"
	}
}
