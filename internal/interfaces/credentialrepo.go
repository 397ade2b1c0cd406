package interfaces

import (
	"context"

	"github.com/haguru/resumatch/internal/models"
)

// CredentialRepository defines the contract for storing and retrieving credentials.
// GetCredential returns (nil, nil) when no credential has the identifier.
// AddCredential returns models.ErrDuplicateIdentifier when the identifier is taken.
type CredentialRepository interface {
	AddCredential(ctx context.Context, credential models.Credential) (string, error)
	GetCredential(ctx context.Context, identifier string) (*models.Credential, error)
	EnsureIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
