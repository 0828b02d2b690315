package mysql

import (
	"fmt"
	"strings"

	"nytaxi/internal/ddl"
	"nytaxi/internal/storage"
)

var dialect = storage.Dialect{
	Dialect: ddl.Dialect{
		Name:       "mysql",
		QuoteIdent: backtick,
		MapType:    MapType,
	},
	DayOf: func(expr string) string { return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", expr) },
	First: "LIMIT 1",
}

// MapType maps a logical kind to a MySQL type.
func MapType(kind string) string {
	switch kind {
	case ddl.KindInt:
		return "BIGINT"
	case ddl.KindFloat:
		return "DOUBLE"
	case ddl.KindBool:
		return "BOOLEAN"
	case ddl.KindTimestamp:
		return "DATETIME(6)"
	case ddl.KindDate:
		return "DATE"
	case ddl.KindBytes:
		return "LONGBLOB"
	default:
		return "TEXT"
	}
}

func backtick(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }
