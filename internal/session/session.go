// Package session carries the per-request authentication state.
// A Session lives in the request context; nothing about it is global.
package session

import (
	"context"
	"time"
)

// Session is the authentication state of one request.
type Session struct {
	Authenticated bool
	Identifier    string
	TokenID       string
	ExpiresAt     time.Time
}

type contextKey struct{}

// Anonymous returns the unauthenticated session.
func Anonymous() Session {
	return Session{}
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or the anonymous session.
func FromContext(ctx context.Context) Session {
	s, ok := ctx.Value(contextKey{}).(Session)
	if !ok {
		return Anonymous()
	}
	return s
}
