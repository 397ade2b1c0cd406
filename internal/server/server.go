package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/haguru/resumatch/internal/interfaces"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 30 * time.Second
	IdleTimeout  = 30 * time.Second
)

type Server struct {
	Port        string
	Host        string
	server      *http.Server
	mux         *http.ServeMux
	middleware  []func(http.Handler) http.Handler
	handlerOnce sync.Once
	Logger      interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(host, port string, logger interfaces.Logger) interfaces.Server {
	mux := http.NewServeMux()
	server := &http.Server{
		Addr:         host + ":" + port,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		mux:    mux,
		Logger: logger,
	}
}

// AddRoute adds a new route to the server.
// Every route is traced with otelhttp under its own name.
func (s *Server) AddRoute(route string, handler func(w http.ResponseWriter, r *http.Request)) error {
	return s.AddHandler(route, http.HandlerFunc(handler))
}

// AddHandler registers handler for route.
func (s *Server) AddHandler(route string, handler http.Handler) error {
	if route == "" || handler == nil {
		return fmt.Errorf("invalid route %q", route)
	}
	s.mux.Handle(route, otelhttp.NewHandler(handler, route))
	s.Logger.Info("Route added", "route", route)
	return nil
}

// Use appends middleware. The first one added is the outermost.
func (s *Server) Use(middleware ...func(http.Handler) http.Handler) {
	s.middleware = append(s.middleware, middleware...)
}

// Handler returns the mux wrapped in the registered middleware.
// The chain is built once; middleware added afterwards is ignored.
func (s *Server) Handler() http.Handler {
	s.handlerOnce.Do(func() {
		var handler http.Handler = s.mux
		for i := len(s.middleware) - 1; i >= 0; i-- {
			handler = s.middleware[i](handler)
		}
		s.server.Handler = handler
	})
	return s.server.Handler
}

// ListenAndServe starts the HTTP server and blocks until it stops.
// A server closed by Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.Handler()
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
