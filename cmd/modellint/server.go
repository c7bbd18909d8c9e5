package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"mercator-hq/modellint/pkg/telemetry/health"
)

// readHeaderTimeout bounds reading request headers on the status server.
const readHeaderTimeout = 5 * time.Second

// statusServer serves /metrics and the health endpoints while watching.
type statusServer struct {
	server   *http.Server
	listener net.Listener
	errCh    chan error
}

// newStatusMux builds the handler of the status server.
func newStatusMux(a *app, tracker *health.RunTracker) *http.ServeMux {
	checker := health.New(health.DefaultCheckTimeout)
	checker.RegisterCheck("models_dir", health.DirCheck(a.cfg.Models.Dir))
	checker.RegisterCheck("last_run", tracker.Check())
	if a.store != nil {
		checker.RegisterCheck("history", health.PingCheck(a.store.Ping))
	}

	mux := http.NewServeMux()
	health.Register(mux, checker, Version, GitCommit)
	if a.metrics.Enabled() {
		mux.Handle("/metrics", a.metrics.Handler())
	}
	return mux
}

// startStatusServer listens on addr and serves in the background.
func startStatusServer(addr string, handler http.Handler) (*statusServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &statusServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		listener: listener,
		errCh:    make(chan error, 1),
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errCh <- fmt.Errorf("status server error: %w", err)
		}
		close(s.errCh)
	}()

	return s, nil
}

// Addr returns the address the server listens on.
func (s *statusServer) Addr() string {
	return s.listener.Addr().String()
}

// Errors reports a server failure.
func (s *statusServer) Errors() <-chan error {
	return s.errCh
}

// Shutdown gracefully stops the server.
func (s *statusServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
