package credentialservice

import "errors"

const (
	// Error messages for credential service operations
	ErrFailedToHashPassword    = "failed to hash password" // #nosec G101
	ErrFailedToStoreCredential = "failed to store credential"
	ErrRetrievingCredential    = "error retrieving credential"
	ErrFailedToComparePassword = "failed to compare password" // #nosec G101
)

var (
	// ErrAlreadyExists is returned by Register when the identifier is taken.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned by Verify for an unknown identifier or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
