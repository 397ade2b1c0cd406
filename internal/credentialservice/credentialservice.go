package credentialservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/resumatch/internal/interfaces"
	"github.com/haguru/resumatch/internal/models"
	"github.com/haguru/resumatch/pkg/helper"

	"golang.org/x/crypto/bcrypt"
)

type CredentialService struct {
	Repo   interfaces.CredentialRepository
	Logger interfaces.Logger
	Cost   int
}

// NewCredentialService creates a new CredentialService instance.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewCredentialService(repo interfaces.CredentialRepository, logger interfaces.Logger, cost int) *CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialService{
		Repo:   repo,
		Logger: logger,
		Cost:   cost,
	}
}

// Register hashes the password and stores the credential.
// It returns ErrAlreadyExists, without changing anything, when the identifier is taken.
func (s *CredentialService) Register(ctx context.Context, identifier, password string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", identifier)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", identifier)

	existing, err := s.Repo.GetCredential(ctx, identifier)
	if err != nil {
		s.Logger.Error(ErrRetrievingCredential, "func", funcName, "user", identifier, "error", err)
		return fmt.Errorf("%s: %w", ErrRetrievingCredential, err)
	}
	if existing != nil {
		s.Logger.Info("Registration rejected, user already exists", "func", funcName, "user", identifier)
		return ErrAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", identifier, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	// a concurrent registration can pass the check above; the store's unique index decides
	id, err := s.Repo.AddCredential(ctx, *models.NewCredential(identifier, hashedPassword))
	if err != nil {
		if errors.Is(err, models.ErrDuplicateIdentifier) {
			s.Logger.Info("Registration lost race, user already exists", "func", funcName, "user", identifier)
			return ErrAlreadyExists
		}
		s.Logger.Error(ErrFailedToStoreCredential, "func", funcName, "user", identifier, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToStoreCredential, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "user", identifier, "ID", id)
	return nil
}

// Verify checks a password against the stored hash.
// Unknown identifiers and wrong passwords both yield ErrInvalidCredentials.
func (s *CredentialService) Verify(ctx context.Context, identifier, password string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", identifier)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", identifier)

	credential, err := s.Repo.GetCredential(ctx, identifier)
	if err != nil {
		s.Logger.Error(ErrRetrievingCredential, "func", funcName, "user", identifier, "error", err)
		return fmt.Errorf("%s: %w", ErrRetrievingCredential, err)
	}
	if credential == nil {
		s.Logger.Info("Unknown user", "func", funcName, "user", identifier)
		return ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(credential.PasswordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.Logger.Info("Invalid password", "func", funcName, "user", identifier)
			return ErrInvalidCredentials
		}
		s.Logger.Error(ErrFailedToComparePassword, "func", funcName, "user", identifier, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToComparePassword, err)
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", identifier)
	return nil
}
