package constants

const (
	// CredentialsCollection is the table (SQL) or collection (MongoDB) holding credentials.
	CredentialsCollection = "credentials"

	IdentifierField   = "identifier"
	PasswordHashField = "password_hash"
)
