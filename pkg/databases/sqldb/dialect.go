package sqldb

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect describes the differences between the supported SQL engines.
type Dialect struct {
	// Name is the database/sql driver name.
	Name string
	// Goose is the dialect name understood by goose.
	Goose string
	// numbered placeholders ($1, $2) instead of '?'
	numbered bool
}

var (
	Postgres = Dialect{Name: "postgres", Goose: "postgres", numbered: true}
	SQLite   = Dialect{Name: "sqlite", Goose: "sqlite3"}
)

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// IsUniqueViolation reports whether err is a unique or primary key constraint failure
// from either lib/pq or the sqlite driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
