package sqlrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/resumatch/internal/credentialrepo/constants"
	"github.com/haguru/resumatch/internal/credentialrepo/sqlrepo/migrations"
	"github.com/haguru/resumatch/internal/interfaces"
	"github.com/haguru/resumatch/internal/models"
	"github.com/haguru/resumatch/pkg/databases/sqldb"
)

// SQLCredentialRepository implements CredentialRepository for PostgreSQL and SQLite.
type SQLCredentialRepository struct {
	dbClient *sqldb.SQLDatabaseClient
}

// NewSQLCredentialRepository creates a new SQL repository instance.
func NewSQLCredentialRepository(dbClient *sqldb.SQLDatabaseClient) (interfaces.CredentialRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &SQLCredentialRepository{dbClient: dbClient}, nil
}

// AddCredential stores a credential and returns its generated id.
// The unique index on identifier turns a concurrent duplicate into models.ErrDuplicateIdentifier.
func (r *SQLCredentialRepository) AddCredential(ctx context.Context, credential models.Credential) (string, error) {
	doc := map[string]interface{}{
		constants.IdentifierField:   credential.Identifier,
		constants.PasswordHashField: credential.PasswordHash,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.CredentialsCollection, doc)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			return "", models.ErrDuplicateIdentifier
		}
		return "", fmt.Errorf("failed to add credential: %w", err)
	}

	id, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", insertedID)
	}
	return id, nil
}

// GetCredential returns the credential stored for identifier, or nil when there is none.
func (r *SQLCredentialRepository) GetCredential(ctx context.Context, identifier string) (*models.Credential, error) {
	var credential models.Credential
	filter := map[string]interface{}{constants.IdentifierField: identifier}

	err := r.dbClient.FindOne(ctx, constants.CredentialsCollection, filter, &credential)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &credential, nil
}

// EnsureIndices applies the embedded migrations for the client's dialect.
// The credentials table carries the unique index on identifier.
func (r *SQLCredentialRepository) EnsureIndices(ctx context.Context) error {
	fsys, err := migrations.ForDriver(r.dbClient.Dialect().Name)
	if err != nil {
		return fmt.Errorf("no migrations for driver %s: %w", r.dbClient.Dialect().Name, err)
	}
	return r.dbClient.EnsureSchema(ctx, constants.CredentialsCollection, fsys)
}

// Close disconnects the SQL client.
func (r *SQLCredentialRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}
