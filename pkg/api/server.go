package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/raktar-project/raktar/pkg/archive"
	"github.com/raktar-project/raktar/pkg/config"
	"github.com/raktar-project/raktar/pkg/events"
	"github.com/raktar-project/raktar/pkg/log"
	"github.com/raktar-project/raktar/pkg/publish"
	"github.com/raktar-project/raktar/pkg/storage"
)

// Server is the registry HTTP server
type Server struct {
	cfg       config.Config
	repo      storage.Repository
	archives  archive.Store
	publisher *publish.Publisher
	broker    *events.Broker
	logger    zerolog.Logger
	http      *http.Server
}

// NewServer creates a registry server over the given stores
func NewServer(cfg config.Config, repo storage.Repository, archives archive.Store) *Server {
	s := &Server{
		cfg:       cfg,
		repo:      repo,
		archives:  archives,
		publisher: publish.NewPublisher(repo, archives),
		broker:    events.NewBroker(),
		logger:    log.WithComponent("api"),
	}
	s.http = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router returns the configured handler, mainly for tests
func (s *Server) Router() http.Handler {
	return s.http.Handler
}

// Events exposes the audit event broker for subscribers
func (s *Server) Events() *events.Broker {
	return s.broker
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	defer s.broker.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	s.logger.Info().Str("addr", s.cfg.ListenAddr).Msg("registry listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
