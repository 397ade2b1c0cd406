package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/haguru/resumatch/internal/interfaces"
	"github.com/pressly/goose/v3"
)

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

type gooseLogger struct {
	logger interfaces.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

// migrate applies every pending migration found at the root of migrations.
func migrate(ctx context.Context, db *sql.DB, dialect Dialect, migrations fs.FS, logger interfaces.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{logger: logger})

	if err := goose.SetDialect(dialect.Goose); err != nil {
		return fmt.Errorf("failed to set goose dialect %s: %w", dialect.Goose, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
