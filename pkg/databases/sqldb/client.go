package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/haguru/resumatch/config"
	"github.com/haguru/resumatch/internal/interfaces"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second

	IDColumn = "id"

	SQLiteBusyTimeout = "?_pragma=busy_timeout(5000)"
)

// SQLDatabaseClient implements the DBClient interface for database/sql engines.
// Table and column names are checked against allow-lists before they reach a query.
type SQLDatabaseClient struct {
	db              *sql.DB
	dialect         Dialect
	logger          interfaces.Logger
	validTables     map[string]bool
	validFields     map[string]bool
	MaxOpenConns    int           // MaxOpenConns is the maximum number of open connections to the database
	MaxIdleConns    int           // MaxIdleConns is the maximum number of idle connections to the database
	ConnMaxLifetime time.Duration // ConnMaxLifetime is the maximum amount of time a connection may be reused
}

// NewPostgresDatabaseClient returns a client backed by lib/pq.
func NewPostgresDatabaseClient(cfg *config.PostgresConfig, logger interfaces.Logger) *SQLDatabaseClient {
	client := &SQLDatabaseClient{
		dialect:         Postgres,
		logger:          logger,
		validTables:     config.ListToMap(cfg.ValidTables),
		validFields:     config.ListToMap(cfg.ValidFields),
		MaxOpenConns:    cfg.Options.MaxOpenConns,
		MaxIdleConns:    cfg.Options.MaxIdleConns,
		ConnMaxLifetime: cfg.Options.ConnMaxLifetime,
	}
	if client.MaxOpenConns == 0 {
		client.MaxOpenConns = DefaultMaxOpenConns
	}
	if client.MaxIdleConns == 0 {
		client.MaxIdleConns = DefaultMaxIdleConns
	}
	if client.ConnMaxLifetime == 0 {
		client.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	return client
}

// NewSQLiteDatabaseClient returns a client backed by the pure Go sqlite driver.
func NewSQLiteDatabaseClient(cfg *config.SQLiteConfig, logger interfaces.Logger) *SQLDatabaseClient {
	return &SQLDatabaseClient{
		dialect:      SQLite,
		logger:       logger,
		validTables:  config.ListToMap(cfg.ValidTables),
		validFields:  config.ListToMap(cfg.ValidFields),
		MaxOpenConns: DefaultMaxOpenConns,
		MaxIdleConns: DefaultMaxIdleConns,
	}
}

// Dialect returns the SQL dialect of the client.
func (c *SQLDatabaseClient) Dialect() Dialect {
	return c.dialect
}

// Connect opens the database and verifies it with a ping.
func (c *SQLDatabaseClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("SQLDatabaseClient: DSN is empty")
	}

	if c.dialect == SQLite && !strings.Contains(dsn, "?") {
		// SQLite allows one writer at a time; wait for the lock instead of failing with SQLITE_BUSY
		dsn += SQLiteBusyTimeout
	}

	var err error
	c.db, err = sql.Open(c.dialect.Name, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", c.dialect.Name, err)
	}

	c.db.SetMaxOpenConns(c.MaxOpenConns)
	c.db.SetMaxIdleConns(c.MaxIdleConns)
	c.db.SetConnMaxLifetime(c.ConnMaxLifetime)

	c.logger.Debug("Connecting to database", "driver", c.dialect.Name)
	return c.Ping(ctx)
}

// Disconnect closes the database connection.
func (c *SQLDatabaseClient) Disconnect(ctx context.Context) error {
	if c.db != nil {
		c.logger.Debug("Disconnecting from database", "driver", c.dialect.Name)
		return c.db.Close()
	}
	return nil
}

// InsertOne inserts a single row. 'document' is expected to be a map[string]interface{}.
// A uuid is generated for the id column when the document has none.
func (c *SQLDatabaseClient) InsertOne(ctx context.Context, tableName string, document interfaces.Document) (interface{}, error) {
	if c.db == nil {
		return nil, fmt.Errorf("SQLDatabaseClient is not connected to a database")
	}
	if !c.validTables[tableName] {
		return nil, fmt.Errorf("SQLDatabaseClient: invalid table name: %s", tableName)
	}

	docMap, ok := document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("SQLDatabaseClient InsertOne expects document to be map[string]interface{}")
	}

	row := make(map[string]interface{}, len(docMap)+1)
	for col, val := range docMap {
		row[col] = val
	}
	if _, exists := row[IDColumn]; !exists {
		row[IDColumn] = uuid.New().String()
	}

	columns, err := c.sortedColumns(row)
	if err != nil {
		return nil, err
	}

	placeholders := make([]string, len(columns))
	values := make([]interface{}, len(columns))
	for i, col := range columns {
		placeholders[i] = c.dialect.Placeholder(i + 1)
		values[i] = row[col]
	}

	// table and column names are checked against the allow-lists above
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		IDColumn,
	) // #nosec G201

	var insertedID interface{}
	err = c.db.QueryRowContext(ctx, query, values...).Scan(&insertedID)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %w", interfaces.ErrDuplicateKey, err)
		}
		return nil, fmt.Errorf("failed to insert into %s: %w", tableName, err)
	}

	if b, ok := insertedID.([]byte); ok {
		return string(b), nil
	}
	return insertedID, nil
}

// FindOne scans the first matching row into 'result', a pointer to a struct.
// Struct fields are mapped to columns by their `db` tag; untagged fields are skipped.
// 'filter' is expected to be a map[string]interface{} of column equality conditions.
func (c *SQLDatabaseClient) FindOne(ctx context.Context, tableName string, filter interfaces.Document, result interfaces.Document) error {
	if c.db == nil {
		return fmt.Errorf("SQLDatabaseClient is not connected to a database")
	}
	if !c.validTables[tableName] {
		return fmt.Errorf("SQLDatabaseClient: invalid table name: %s", tableName)
	}

	filterMap, ok := filter.(map[string]interface{})
	if !ok {
		return fmt.Errorf("SQLDatabaseClient FindOne expects filter to be map[string]interface{}")
	}
	if len(filterMap) == 0 {
		return fmt.Errorf("SQLDatabaseClient FindOne requires a non-empty filter")
	}

	filterColumns, err := c.sortedColumns(filterMap)
	if err != nil {
		return err
	}
	whereClauses := make([]string, len(filterColumns))
	whereValues := make([]interface{}, len(filterColumns))
	for i, col := range filterColumns {
		whereClauses[i] = fmt.Sprintf("%s = %s", col, c.dialect.Placeholder(i+1))
		whereValues[i] = filterMap[col]
	}

	resultValue := reflect.ValueOf(result)
	if resultValue.Kind() != reflect.Ptr || resultValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("result must be a pointer to a struct")
	}
	elem := resultValue.Elem()
	elemType := elem.Type()

	columns := make([]string, 0, elemType.NumField())
	fieldPointers := make([]interface{}, 0, elemType.NumField())
	for i := 0; i < elemType.NumField(); i++ {
		column := elemType.Field(i).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}
		if !c.validFields[column] {
			return fmt.Errorf("SQLDatabaseClient: invalid field name: %s", column)
		}
		columns = append(columns, column)
		fieldPointers = append(fieldPointers, elem.Field(i).Addr().Interface())
	}
	if len(columns) == 0 {
		return fmt.Errorf("result struct has no db tagged fields")
	}

	// table and column names are checked against the allow-lists above
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIMIT 1",
		strings.Join(columns, ", "),
		tableName,
		strings.Join(whereClauses, " AND "),
	) // #nosec G201

	err = c.db.QueryRowContext(ctx, query, whereValues...).Scan(fieldPointers...)
	if errors.Is(err, sql.ErrNoRows) {
		// Reset the struct so it doesn't contain partial data
		elem.Set(reflect.Zero(elemType))
		return fmt.Errorf("%w in %s", interfaces.ErrNoDocuments, tableName)
	}
	if err != nil {
		return fmt.Errorf("failed to find one in %s: %w", tableName, err)
	}
	return nil
}

// EnsureSchema applies the goose migrations in 'schema', an fs.FS holding .sql files at its root.
func (c *SQLDatabaseClient) EnsureSchema(ctx context.Context, tableName string, schema interfaces.Document) error {
	if c.db == nil {
		return fmt.Errorf("SQLDatabaseClient is not connected to a database")
	}

	migrations, ok := schema.(fs.FS)
	if !ok || migrations == nil {
		return fmt.Errorf("SQLDatabaseClient EnsureSchema expects schema to be an fs.FS of migrations")
	}

	c.logger.Debug("Applying migrations", "driver", c.dialect.Name, "table", tableName)
	return migrate(ctx, c.db, c.dialect, migrations, c.logger)
}

// Ping checks the health of the database connection.
func (c *SQLDatabaseClient) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("SQLDatabaseClient is not connected to a database")
	}
	return c.db.PingContext(ctx)
}

// sortedColumns validates the keys of doc and returns them in a stable order.
func (c *SQLDatabaseClient) sortedColumns(doc map[string]interface{}) ([]string, error) {
	columns := make([]string, 0, len(doc))
	for col := range doc {
		if !c.validFields[col] {
			return nil, fmt.Errorf("SQLDatabaseClient: invalid field name: %s", col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns, nil
}
