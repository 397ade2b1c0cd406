package session

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/resumatch/config"
	"github.com/haguru/resumatch/internal/auth"
	"github.com/haguru/resumatch/internal/interfaces"
)

var ErrNoPrivateKey = errors.New("session private key is nil")

// Manager issues, resolves and ends cookie backed sessions.
type Manager struct {
	privateKey *ecdsa.PrivateKey
	store      interfaces.RevocationStore
	logger     interfaces.Logger
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewManager(privateKey *ecdsa.PrivateKey, store interfaces.RevocationStore, cfg config.SessionConfig, logger interfaces.Logger) (*Manager, error) {
	if privateKey == nil {
		return nil, ErrNoPrivateKey
	}
	if store == nil {
		return nil, fmt.Errorf("revocation store cannot be nil")
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = config.DefaultCookieName
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}

	return &Manager{
		privateKey: privateKey,
		store:      store,
		logger:     logger,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     cfg.Secure,
	}, nil
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Start signs a session token for identifier and sets it as an HttpOnly cookie.
func (m *Manager) Start(w http.ResponseWriter, identifier string) (Session, error) {
	token, claims, err := auth.CreateToken(identifier, m.ttl, m.privateKey)
	if err != nil {
		return Anonymous(), fmt.Errorf("failed to create session token: %w", err)
	}

	expiresAt := claims.ExpiresAt.Time
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})

	return Session{
		Authenticated: true,
		Identifier:    identifier,
		TokenID:       claims.ID,
		ExpiresAt:     expiresAt,
	}, nil
}

// Resolve turns the request cookie into a Session.
// A missing, invalid, expired or revoked token resolves to the anonymous session.
func (m *Manager) Resolve(r *http.Request) Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return Anonymous()
	}

	claims, err := auth.VerifyToken(cookie.Value, &m.privateKey.PublicKey)
	if err != nil {
		m.logger.Debug("Rejected session token", "error", err)
		return Anonymous()
	}

	revoked, err := m.store.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		m.logger.Warn("Could not check session revocation", "error", err)
		return Anonymous()
	}
	if revoked {
		m.logger.Debug("Session token was revoked", "jti", claims.ID)
		return Anonymous()
	}

	return Session{
		Authenticated: true,
		Identifier:    claims.Email,
		TokenID:       claims.ID,
		ExpiresAt:     claims.ExpiresAt.Time,
	}
}

// End revokes the token of s, if any, and clears the cookie.
// Ending an anonymous session only clears the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, s Session) error {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})

	if !s.Authenticated || s.TokenID == "" {
		return nil
	}

	if err := m.store.Revoke(ctx, s.TokenID, time.Until(s.ExpiresAt)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
