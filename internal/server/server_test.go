package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haguru/resumatch/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer("localhost", "0", zerolog.NewNopLogger()).(*Server)
}

func header(name, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(name, value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestServer_AddRoute(t *testing.T) {
	s := newTestServer()
	require.NoError(t, s.AddRoute("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_AddHandler_Invalid(t *testing.T) {
	s := newTestServer()
	assert.Error(t, s.AddHandler("", http.NotFoundHandler()))
	assert.Error(t, s.AddHandler("/x", nil))
}

func TestServer_UseOrder(t *testing.T) {
	s := newTestServer()
	s.Use(header("X-Order", "outer"), header("X-Order", "inner"))
	require.NoError(t, s.AddRoute("/", func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, rr.Header().Values("X-Order"))
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	s := newTestServer()
	assert.NoError(t, s.Shutdown(context.Background()))
	// a closed server does not report an error from ListenAndServe
	assert.NoError(t, s.ListenAndServe())
}
