package postgres

import (
	"nytaxi/internal/ddl"
	"nytaxi/internal/storage"
)

var dialect = storage.Dialect{
	Dialect: ddl.Dialect{
		Name:       "postgres",
		QuoteIdent: ddl.DoubleQuote,
		MapType:    MapType,
	},
	DayOf: storage.CastDateText,
	First: "LIMIT 1",
}

// MapType maps a logical kind to a Postgres SQL type.
//
//	int       -> BIGINT
//	float     -> DOUBLE PRECISION
//	bool      -> BOOLEAN
//	timestamp -> TIMESTAMP
//	date      -> DATE
//	bytes     -> BYTEA
//	otherwise -> TEXT
func MapType(kind string) string {
	switch kind {
	case ddl.KindInt:
		return "BIGINT"
	case ddl.KindFloat:
		return "DOUBLE PRECISION"
	case ddl.KindBool:
		return "BOOLEAN"
	case ddl.KindTimestamp:
		return "TIMESTAMP"
	case ddl.KindDate:
		return "DATE"
	case ddl.KindBytes:
		return "BYTEA"
	default:
		return "TEXT"
	}
}
