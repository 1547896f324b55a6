// Package server exposes the fake backend over a real HTTP port so it
// can be exercised with any client. Matched routes are answered by the
// interceptor; unmatched routes are forwarded to a configured upstream
// or rejected when none is set.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/beminee/mockauth/internal/delay"
	"github.com/beminee/mockauth/pkg/config"
	"github.com/beminee/mockauth/pkg/interceptor"
	"github.com/beminee/mockauth/pkg/logging"
	"github.com/beminee/mockauth/pkg/store"
)

// Server runs the fake backend behind a net/http server.
type Server struct {
	cfg        *config.Config
	log        *slog.Logger
	users      *store.Users
	httpServer *http.Server
	handler    http.Handler

	mu      sync.Mutex
	running bool
	addr    net.Addr
}

// New wires a Server from configuration. kv is the persistence backend
// for the user collection.
func New(cfg *config.Config, kv store.KeyValue, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = logging.Nop()
	}

	inner, err := passthrough(cfg.Upstream)
	if err != nil {
		return nil, err
	}

	minDelay, maxDelay, err := cfg.DelayBounds()
	if err != nil {
		return nil, err
	}

	users := store.NewUsers(kv)
	rt := interceptor.New(interceptor.Options{
		Store:     users,
		Transport: inner,
		Delay:     delay.New(),
		MinDelay:  minDelay,
		MaxDelay:  maxDelay,
		Disabled:  minDelay == 0 && maxDelay == 0,
		Logger:    log,
	})

	return &Server{
		cfg:     cfg,
		log:     log,
		users:   users,
		handler: &bridge{rt: rt, log: log},
	}, nil
}

// Start seeds the store if needed and begins serving. It returns once
// the listener is accepting connections.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("server already running")
	}

	if err := s.seed(ctx); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}
	s.addr = ln.Addr()

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server error", "error", err)
		}
	}()

	s.running = true
	s.log.Info("fake backend listening", "addr", s.addr.String(), "upstream", s.cfg.Upstream)
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// seed writes the configured seed users into an empty store. A
// non-empty store is left alone so restarts never clobber registered
// users.
func (s *Server) seed(ctx context.Context) error {
	if len(s.cfg.SeedUsers) == 0 {
		return nil
	}
	existing, err := s.users.Load(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	seeded := s.cfg.Users()
	if err := s.users.Save(ctx, seeded); err != nil {
		return err
	}
	s.log.Info("seeded user collection", "count", len(seeded))
	return nil
}

// bridge adapts the client-side interceptor to the server side: each
// inbound request is replayed through the RoundTripper and the
// synthetic response copied back.
type bridge struct {
	rt  http.RoundTripper
	log *slog.Logger
}

func (b *bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out := r.Clone(r.Context())
	// Inbound server requests carry a RequestURI, which outbound
	// client requests must not.
	out.RequestURI = ""
	if out.URL.Scheme == "" {
		out.URL.Scheme = "http"
	}
	if out.URL.Host == "" {
		out.URL.Host = r.Host
	}

	resp, err := b.rt.RoundTrip(out)
	if err != nil {
		b.log.Error("round trip failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := copyBody(w, resp); err != nil {
		b.log.Error("failed to write response body", "error", err)
	}
}
