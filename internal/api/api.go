package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/egxadev/wa-webhook/internal/conversation"
	"github.com/egxadev/wa-webhook/internal/messaging"
	"github.com/egxadev/wa-webhook/internal/store"
)

const (
	// DefaultAddr is the default listen address for the API server.
	DefaultAddr = ":8080"
	// DefaultResolveTimeout bounds webhook processing including the
	// outbound send and any generative call.
	DefaultResolveTimeout = 30 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Opts holds configuration options for the API server.
type Opts struct {
	Addr  string
	Store store.Store
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithStore exposes the inquiry store on the administrative surface.
func WithStore(st store.Store) Option {
	return func(o *Opts) { o.Store = st }
}

// Server wires the webhook endpoint and the administrative surface to the
// resolver and the messaging service.
type Server struct {
	addr       string
	resolver   *conversation.Resolver
	msgService messaging.Service
	store      store.Store
	httpServer *http.Server
}

// NewServer creates an API server over the given resolver and messaging
// service.
func NewServer(resolver *conversation.Resolver, msgService messaging.Service, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{
		addr:       cfg.Addr,
		resolver:   resolver,
		msgService: msgService,
		store:      cfg.Store,
	}
}

// Handler returns the route table. Split out from Run so tests can drive it
// with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", s.webhookHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /conversation-info", s.infoHandler)
	mux.HandleFunc("POST /reset-conversation/{userID}", s.resetHandler)
	mux.HandleFunc("GET /inquiries", s.inquiriesHandler)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{Addr: s.addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}
