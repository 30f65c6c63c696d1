// Package sqliteexternal provides the optional CGO SQLite driver.
//
// To use the CGO driver (github.com/mattn/go-sqlite3) build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./...
//
// core/sqlite then imports this package instead of modernc.org/sqlite and
// uses the constants below for the driver name and connection parameters.
// Without the tag this package is empty.
package sqliteexternal
