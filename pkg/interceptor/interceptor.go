// Package interceptor implements a fake user-management backend as an
// http.RoundTripper. It matches outgoing requests against a fixed set
// of /users routes, serves them from a local key-value store with
// simulated network latency, and forwards everything else to the
// wrapped real transport.
package interceptor

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beminee/mockauth/internal/delay"
	"github.com/beminee/mockauth/pkg/logging"
	"github.com/beminee/mockauth/pkg/store"
	"github.com/beminee/mockauth/pkg/userapi"
)

// Default bounds for the simulated response delay.
const (
	DefaultMinDelay = 250 * time.Millisecond
	DefaultMaxDelay = 1000 * time.Millisecond
)

// Options configures an Interceptor. Store is required; everything
// else has a sensible default.
type Options struct {
	// Store holds the persisted user collection.
	Store *store.Users

	// Transport handles requests that match no fake route. Defaults
	// to http.DefaultTransport.
	Transport http.RoundTripper

	// Delay is the random source for simulated latency. Defaults to a
	// time-seeded source.
	Delay *delay.Source

	// MinDelay and MaxDelay bound the simulated response delay.
	// Both zero means the defaults (250ms to 1s). Set Disabled to
	// skip the delay entirely, e.g. in tests.
	MinDelay time.Duration
	MaxDelay time.Duration
	Disabled bool

	// Logger receives one entry per handled request. Defaults to the
	// no-op logger.
	Logger *slog.Logger
}

// Interceptor is an http.RoundTripper simulating a user-management
// REST API. Each request is a single stateless pass: load the
// collection, dispatch, mutate and persist if needed, respond. No
// state is cached across requests.
type Interceptor struct {
	users     *store.Users
	transport http.RoundTripper
	delay     *delay.Source
	minDelay  time.Duration
	maxDelay  time.Duration
	log       *slog.Logger
}

// New creates an Interceptor from opts.
func New(opts Options) *Interceptor {
	i := &Interceptor{
		users:     opts.Store,
		transport: opts.Transport,
		delay:     opts.Delay,
		minDelay:  opts.MinDelay,
		maxDelay:  opts.MaxDelay,
		log:       opts.Logger,
	}
	if i.transport == nil {
		i.transport = http.DefaultTransport
	}
	if i.delay == nil {
		i.delay = delay.New()
	}
	if i.minDelay == 0 && i.maxDelay == 0 {
		i.minDelay = DefaultMinDelay
		i.maxDelay = DefaultMaxDelay
	}
	if opts.Disabled {
		i.minDelay = 0
		i.maxDelay = 0
	}
	if i.log == nil {
		i.log = logging.Nop()
	}
	return i
}

// RoundTrip implements http.RoundTripper. Matched routes are answered
// locally; unmatched requests pass through to the inner transport
// untouched.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	r, id := matchRoute(req.Method, req.URL.Path)
	if r == routeNone {
		return i.transport.RoundTrip(req)
	}

	// Each handled request works on a fresh copy of the collection.
	// Concurrent mutations race as last-writer-wins on the full-list
	// write; this layer makes no stronger promise.
	users, err := i.users.Load(req.Context())
	if err != nil {
		return nil, err
	}

	resp, err := i.dispatch(req, r, id, users)
	if err != nil {
		i.log.Error("fake backend request failed",
			"route", r.String(),
			"method", req.Method,
			"path", req.URL.Path,
			"error", err)
		return nil, err
	}

	i.log.Info("fake backend request",
		"requestId", uuid.NewString(),
		"route", r.String(),
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode)
	return resp, nil
}

func (i *Interceptor) dispatch(req *http.Request, r route, id int, users []userapi.User) (*http.Response, error) {
	switch r {
	case routeAuthenticate:
		return i.authenticate(req, users)
	case routeRegister:
		return i.register(req, users)
	case routeList:
		return i.list(req, users)
	case routeGetByID:
		return i.getByID(req, users, id)
	case routeUpdate:
		return i.update(req, users, id)
	case routeDelete:
		return i.delete(req, users, id)
	}
	// Unreachable; matchRoute only returns the routes above.
	return i.transport.RoundTrip(req)
}

// bearerToken extracts the Authorization header's bearer parameter.
func bearerToken(req *http.Request) string {
	scheme, param, ok := strings.Cut(req.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return param
}

// isLoggedIn accepts any sentinel token. The admin token shares the
// regular token as a prefix, so one prefix check covers both.
func isLoggedIn(req *http.Request) bool {
	return strings.HasPrefix(bearerToken(req), userapi.TokenUser)
}

// isAdmin requires an exact match against the admin sentinel.
func isAdmin(req *http.Request) bool {
	return bearerToken(req) == userapi.TokenAdmin
}

var _ http.RoundTripper = (*Interceptor)(nil)
