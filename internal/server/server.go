package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/energyops/assetbot/internal/logging"
)

// Config holds the server configuration
type Config struct {
	Addr string // host:port to listen on, e.g. ":8081"
}

// Server serves the ops routes.
type Server struct {
	config   *Config
	http     *http.Server
	listener net.Listener
	wg       sync.WaitGroup
}

// New creates a new Server instance
func New(config *Config, stats StatsSource) *Server {
	return &Server{
		config: config,
		http: &http.Server{
			Handler:           NewRouter(stats, time.Now()),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start binds the listener and serves in the background. It returns once the
// address is bound, so a port conflict is reported to the caller.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = listener

	logging.Info("Ops server listening", zap.String("addr", listener.Addr().String()))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ops server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down ops server...")

	err := s.http.Shutdown(ctx)
	s.wg.Wait()
	if err != nil {
		return fmt.Errorf("ops server shutdown: %w", err)
	}
	return nil
}
