// Package all wires every built-in storage backend into the storage factory.
//
// Importing it for side effects makes these kinds available to storage.New:
//
//   - "postgres" (nytaxi/internal/storage/postgres)
//   - "sqlite"   (nytaxi/internal/storage/sqlite)
//   - "mssql"    (nytaxi/internal/storage/mssql)
//   - "mysql"    (nytaxi/internal/storage/mysql)
//
// Binaries that need only one backend can import that package directly instead.
package all

import (
	_ "nytaxi/internal/storage/mssql"
	_ "nytaxi/internal/storage/mysql"
	_ "nytaxi/internal/storage/postgres"
	_ "nytaxi/internal/storage/sqlite"
)
