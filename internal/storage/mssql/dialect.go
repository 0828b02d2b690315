package mssql

import (
	"fmt"
	"strings"

	"nytaxi/internal/ddl"
	"nytaxi/internal/storage"
)

var dialect = storage.Dialect{
	Dialect: ddl.Dialect{
		Name:        "mssql",
		QuoteIdent:  msIdent,
		MapType:     MapType,
		GuardCreate: guardCreate,
	},
	DayOf: func(expr string) string { return fmt.Sprintf("CONVERT(varchar(10), %s, 23)", expr) },
	First: "OFFSET 0 ROWS FETCH NEXT 1 ROWS ONLY",
}

// MapType maps a logical kind to a SQL Server type.
func MapType(kind string) string {
	switch kind {
	case ddl.KindInt:
		return "BIGINT"
	case ddl.KindFloat:
		return "FLOAT"
	case ddl.KindBool:
		return "BIT"
	case ddl.KindTimestamp:
		return "DATETIME2"
	case ddl.KindDate:
		return "DATE"
	case ddl.KindBytes:
		return "VARBINARY(MAX)"
	default:
		return "NVARCHAR(MAX)"
	}
}

// guardCreate emulates CREATE TABLE IF NOT EXISTS.
func guardCreate(fqn, create string) string {
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL\n%s;", strings.ReplaceAll(fqn, "'", "''"), create)
}

// msIdent safely quotes a single identifier segment for SQL Server.
func msIdent(id string) string { return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]` }
