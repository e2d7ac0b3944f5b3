package db

import "database/sql"

// DB wraps the sql handle so storage packages depend on one type.
type DB struct {
	*sql.DB
}
