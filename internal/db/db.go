package db

import "database/sql"

// DB wraps the shared *sql.DB so packages depend on an injected
// handle with an explicit lifecycle instead of a package global.
type DB struct {
	*sql.DB
}
