package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// ForDriver returns the migrations for a database/sql driver name ("postgres" or "sqlite").
func ForDriver(driver string) (fs.FS, error) {
	if _, err := fs.Stat(files, driver); err != nil {
		return nil, fs.ErrNotExist
	}
	return fs.Sub(files, driver)
}
