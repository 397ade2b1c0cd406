package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrNoDocuments is wrapped by FindOne when nothing matches the filter.
	ErrNoDocuments = errors.New("no document found")
	// ErrDuplicateKey is wrapped by InsertOne when a unique constraint rejects the document.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. It could be a struct, a map[string]interface{},
// or any type that can be marshaled/unmarshaled by the specific database driver.
type Document interface{}

// DBClient defines the interface for a generic database client.
// It abstracts the operations the credential store needs across database types
// (MongoDB, PostgreSQL, SQLite).
type DBClient interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	// Returns an error if the connection fails.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	// Returns an error if the disconnection fails.
	Disconnect(ctx context.Context) error

	// InsertOne inserts a single document into the specified collection/table.
	// The collection/table name is provided by 'collectionName'.
	// 'document' is the data to be inserted.
	// Returns the ID of the inserted document (e.g., MongoDB ObjectID, SQL primary key) and an error.
	// Returns ErrDuplicateKey (wrapped) if a unique index rejects the document.
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// FindOne retrieves a single document from the specified collection/table
	// that matches the provided filter.
	// 'filter' is a mechanism to specify query conditions (e.g., MongoDB BSON D, SQL WHERE clause).
	// 'result' is a pointer to the variable where the decoded document will be stored.
	// Returns ErrNoDocuments (wrapped) if no document matches.
	FindOne(ctx context.Context, collectionName string, filter Document, result Document) error

	// EnsureSchema creates whatever the collection/table needs before use
	// (MongoDB index models, SQL migrations).
	EnsureSchema(ctx context.Context, collectionName string, schema Document) error

	// Ping checks the health of the database connection.
	// Returns an error if the database is unreachable or unhealthy.
	Ping(ctx context.Context) error
}
