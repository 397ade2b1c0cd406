package session

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haguru/resumatch/config"
	"github.com/haguru/resumatch/internal/auth"
	"github.com/haguru/resumatch/internal/revocation"
	"github.com/haguru/resumatch/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Revoke(context.Context, string, time.Duration) error {
	return errors.New("store down")
}
func (failingStore) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}
func (failingStore) Close() error { return nil }

func newTestManager(t *testing.T) (*Manager, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	m, err := NewManager(key, revocation.NewMemoryStore(), config.SessionConfig{
		CookieName: "session_token",
		TTL:        15 * time.Minute,
	}, zerolog.NewNopLogger())
	require.NoError(t, err)
	return m, key
}

// requestWithCookies replays the cookies set on rec into a new request.
func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Anonymous(), FromContext(context.Background()))

	s := Session{Authenticated: true, Identifier: "a@x.com"}
	assert.Equal(t, s, FromContext(WithSession(context.Background(), s)))
}

func TestManager_StartResolveEnd(t *testing.T) {
	m, _ := newTestManager(t)

	rec := httptest.NewRecorder()
	started, err := m.Start(rec, "a@x.com")
	require.NoError(t, err)
	assert.True(t, started.Authenticated)
	assert.Equal(t, "a@x.com", started.Identifier)
	assert.NotEmpty(t, started.TokenID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)

	resolved := m.Resolve(requestWithCookies(rec))
	assert.True(t, resolved.Authenticated)
	assert.Equal(t, "a@x.com", resolved.Identifier)
	assert.Equal(t, started.TokenID, resolved.TokenID)

	endRec := httptest.NewRecorder()
	require.NoError(t, m.End(context.Background(), endRec, resolved))
	cleared := endRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.True(t, cleared[0].MaxAge < 0)

	// the old cookie is useless after logout
	assert.Equal(t, Anonymous(), m.Resolve(requestWithCookies(rec)))
}

func TestManager_Resolve(t *testing.T) {
	m, key := newTestManager(t)

	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	foreign, _, err := auth.CreateToken("a@x.com", time.Minute, otherKey)
	require.NoError(t, err)
	expired, _, err := auth.CreateToken("a@x.com", -time.Minute, key)
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie", cookie: nil},
		{name: "empty cookie", cookie: &http.Cookie{Name: "session_token", Value: ""}},
		{name: "garbage", cookie: &http.Cookie{Name: "session_token", Value: "not-a-jwt"}},
		{name: "signed by another key", cookie: &http.Cookie{Name: "session_token", Value: foreign}},
		{name: "expired", cookie: &http.Cookie{Name: "session_token", Value: expired}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/menu", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			assert.Equal(t, Anonymous(), m.Resolve(req))
		})
	}
}

func TestManager_StoreFailures(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	m, err := NewManager(key, failingStore{}, config.SessionConfig{}, zerolog.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCookieName, m.CookieName())

	rec := httptest.NewRecorder()
	started, err := m.Start(rec, "a@x.com")
	require.NoError(t, err)

	// an unverifiable session is treated as anonymous
	assert.Equal(t, Anonymous(), m.Resolve(requestWithCookies(rec)))

	endRec := httptest.NewRecorder()
	assert.Error(t, m.End(context.Background(), endRec, started))
	// the cookie is cleared even when revocation fails
	require.Len(t, endRec.Result().Cookies(), 1)
}

func TestManager_EndAnonymous(t *testing.T) {
	m, _ := newTestManager(t)

	rec := httptest.NewRecorder()
	assert.NoError(t, m.End(context.Background(), rec, Anonymous()))
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(nil, revocation.NewMemoryStore(), config.SessionConfig{}, zerolog.NewNopLogger())
	assert.ErrorIs(t, err, ErrNoPrivateKey)

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	_, err = NewManager(key, nil, config.SessionConfig{}, zerolog.NewNopLogger())
	assert.Error(t, err)
}
