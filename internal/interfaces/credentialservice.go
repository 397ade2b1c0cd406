package interfaces

import "context"

type CredentialService interface {
	Register(ctx context.Context, identifier, password string) error
	Verify(ctx context.Context, identifier, password string) error
}
