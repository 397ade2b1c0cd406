package models

import "errors"

// ErrDuplicateIdentifier is returned by a credential store when the identifier is already taken.
var ErrDuplicateIdentifier = errors.New("identifier already exists")

// Credential represents a stored login for the application/database.
type Credential struct {
	ID           string `bson:"-" mapstructure:"id" db:"id"`
	Identifier   string `bson:"identifier" mapstructure:"identifier" db:"identifier"`
	PasswordHash []byte `bson:"password_hash" mapstructure:"password_hash" db:"password_hash"`
}

// NewCredential creates a new Credential instance with the given identifier and password hash.
// Note: No validation is performed here.
func NewCredential(identifier string, passwordHash []byte) *Credential {
	return &Credential{
		Identifier:   identifier,
		PasswordHash: passwordHash,
	}
}
