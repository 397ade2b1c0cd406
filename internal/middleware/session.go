package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/haguru/resumatch/internal/models/dto"
	"github.com/haguru/resumatch/internal/session"
)

const (
	ErrUnauthorized  = "unauthorized"
	MsgLoginRequired = "Please login first"
	ContentType      = "Content-Type"
	ContentTypeJson  = "application/json"
)

// SessionResolver is implemented by session.Manager.
type SessionResolver interface {
	Resolve(r *http.Request) session.Session
}

// Session stores the resolved session of every request in its context.
func Session(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := resolver.Resolve(r)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// RequireSession answers 401 unless the request carries an authenticated session.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).Authenticated {
			w.Header().Set(ContentType, ContentTypeJson)
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponseDTO{
				Error:   ErrUnauthorized,
				Message: MsgLoginRequired,
			})
			return
		}
		next(w, r)
	}
}
