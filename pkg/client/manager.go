package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Session manager defaults.
const (
	DefaultMaxSessions = 1
	DefaultInitTimeout = 30 * time.Second
)

// Session binds an endpoint URL to the client built for it.
type Session struct {
	ID          string
	EndpointURL string
	Client      *Client
	CreatedAt   time.Time
}

// SessionManager hands out one Client per endpoint URL. With the default
// capacity of one, asking for a different endpoint discards the previous
// session before the new one is built. Discarded clients keep working for
// callers that still hold them; nothing they started is cancelled.
//
// SessionManager is safe for concurrent use. Concurrent requests for the same
// new endpoint share a single construction.
type SessionManager struct {
	dial        Dialer
	maxSessions int
	initTimeout time.Duration

	mu       sync.Mutex // serialises eviction before construction
	sessions *lru.Cache[string, *Session]
	group    singleflight.Group
}

// ManagerOption configures a SessionManager.
type ManagerOption func(*SessionManager)

// WithMaxSessions sets how many endpoints may hold a session at once. The
// least recently used session is discarded when the limit is reached.
func WithMaxSessions(n int) ManagerOption {
	return func(m *SessionManager) {
		m.maxSessions = n
	}
}

// WithInitTimeout bounds transport construction. Non-positive values keep
// DefaultInitTimeout.
func WithInitTimeout(d time.Duration) ManagerOption {
	return func(m *SessionManager) {
		if d > 0 {
			m.initTimeout = d
		}
	}
}

// NewSessionManager creates a manager that builds transports with dial.
func NewSessionManager(dial Dialer, opts ...ManagerOption) (*SessionManager, error) {
	if dial == nil {
		return nil, errors.New("dialer is required")
	}

	m := &SessionManager{
		dial:        dial,
		maxSessions: DefaultMaxSessions,
		initTimeout: DefaultInitTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.maxSessions < 1 {
		m.maxSessions = 1
	}

	cache, err := lru.NewWithEvict(m.maxSessions, onSessionEvicted)
	if err != nil {
		return nil, err
	}
	m.sessions = cache
	return m, nil
}

func onSessionEvicted(endpoint string, s *Session) {
	slog.Info("discarding cognos session",
		slog.String("endpoint", endpoint),
		slog.String("session_id", s.ID),
		slog.Bool("logged_in", s.Client.LoggedIn()),
	)
}

// GetClient returns the client cached for endpointURL, building a new session
// when there is none. debug only applies to newly built clients.
func (m *SessionManager) GetClient(ctx context.Context, endpointURL string, debug bool) (*Client, error) {
	if s, ok := m.sessions.Get(endpointURL); ok {
		return s.Client, nil
	}

	v, err, shared := m.group.Do(endpointURL, func() (any, error) {
		return m.create(ctx, endpointURL, debug)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("joined in-flight session construction", slog.String("endpoint", endpointURL))
	}
	return v.(*Session).Client, nil
}

func (m *SessionManager) create(ctx context.Context, endpointURL string, debug bool) (*Session, error) {
	// A flight that finished just before this one started may have stored it.
	if s, ok := m.sessions.Peek(endpointURL); ok {
		return s, nil
	}

	m.mu.Lock()
	if m.sessions.Len() >= m.maxSessions {
		m.sessions.RemoveOldest()
	}
	m.mu.Unlock()

	// Construction is shared by every waiter, so it must not die with the
	// context of whichever caller started it.
	dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.initTimeout)
	defer cancel()

	t, err := m.dial(dialCtx, endpointURL, debug)
	if err != nil {
		slog.Warn("cognos session construction failed",
			slog.String("endpoint", endpointURL),
			slog.String("error", err.Error()),
		)
		return nil, &SessionError{Endpoint: endpointURL, Err: err}
	}

	s := &Session{
		ID:          uuid.NewString(),
		EndpointURL: endpointURL,
		Client:      NewClient(t, debug),
		CreatedAt:   time.Now(),
	}
	m.sessions.Add(endpointURL, s)

	slog.Info("created cognos session",
		slog.String("endpoint", endpointURL),
		slog.String("session_id", s.ID),
		slog.String("namespace", t.Namespace()),
	)
	return s, nil
}

// Session returns the session cached for endpointURL without building one.
func (m *SessionManager) Session(endpointURL string) (*Session, bool) {
	return m.sessions.Peek(endpointURL)
}

// Sessions returns the cached sessions, least recently used first.
func (m *SessionManager) Sessions() []*Session {
	return m.sessions.Values()
}

// Dispose discards the session for endpointURL. It reports whether one existed.
// The remote session is not logged off.
func (m *SessionManager) Dispose(endpointURL string) bool {
	return m.sessions.Remove(endpointURL)
}

// Close discards every session.
func (m *SessionManager) Close() {
	m.sessions.Purge()
}
