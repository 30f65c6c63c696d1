//go:build cgo_sqlite

// Registers mattn/go-sqlite3 as "sqlite3" with database/sql.
package sqliteexternal

import (
	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver
)

const (
	// DriverName is the SQL driver name to use with database/sql.
	DriverName = "sqlite3"

	// DriverType identifies this as the CGO implementation.
	DriverType = "cgo"

	// DriverPackage is the import path of the underlying driver.
	DriverPackage = "github.com/mattn/go-sqlite3"

	// ForeignKeysParam is the DSN parameter that enables foreign keys.
	ForeignKeysParam = "_foreign_keys=1"
)
