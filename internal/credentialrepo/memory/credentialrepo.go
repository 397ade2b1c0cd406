// Package memory keeps credentials in process memory. Data is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/haguru/resumatch/internal/interfaces"
	"github.com/haguru/resumatch/internal/models"
)

type CredentialRepository struct {
	mu          sync.RWMutex
	credentials map[string]models.Credential
}

func NewCredentialRepository() interfaces.CredentialRepository {
	return &CredentialRepository{credentials: make(map[string]models.Credential)}
}

func (r *CredentialRepository) AddCredential(_ context.Context, credential models.Credential) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.credentials[credential.Identifier]; exists {
		return "", models.ErrDuplicateIdentifier
	}

	credential.ID = uuid.NewString()
	credential.PasswordHash = append([]byte(nil), credential.PasswordHash...)
	r.credentials[credential.Identifier] = credential
	return credential.ID, nil
}

func (r *CredentialRepository) GetCredential(_ context.Context, identifier string) (*models.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	credential, ok := r.credentials[identifier]
	if !ok {
		return nil, nil
	}
	credential.PasswordHash = append([]byte(nil), credential.PasswordHash...)
	return &credential, nil
}

func (r *CredentialRepository) EnsureIndices(context.Context) error { return nil }

func (r *CredentialRepository) Close(context.Context) error { return nil }
