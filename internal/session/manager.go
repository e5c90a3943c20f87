// Package session ties a browser session to its cart and favourites stores.
// Each session owns exactly one in-memory copy of its state for the process
// lifetime; there is no cross-session coordination, and two sessions writing
// the same mirror key are last-write-wins.
package session

import (
	"context"
	"net/http"
	"sync"

	"ethnikart/internal/cart"
	"ethnikart/internal/favourites"
	"ethnikart/internal/keyvalue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cookieName = "ethnikart_session"

// Session bundles the per-session stores.
type Session struct {
	ID         string
	Cart       *cart.Store
	Favourites *favourites.Store
}

// Manager constructs and caches one Session per session id. Stores hydrate
// from the key-value mirror exactly once, when the session is first touched.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	kv       keyvalue.Store
	writer   keyvalue.Writer
	logger   *zap.Logger
}

// NewManager builds a session manager over the given mirror and write policy.
func NewManager(kv keyvalue.Store, writer keyvalue.Writer, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		kv:       kv,
		writer:   writer,
		logger:   logger,
	}
}

// Get returns the session for id, creating and hydrating it on first touch.
func (m *Manager) Get(ctx context.Context, id string) *Session {
	m.mu.Lock()
	if sess, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		return sess
	}
	m.mu.Unlock()

	// Hydrate outside the lock; mirror reads can block on the network.
	cartStore := cart.NewStore("cart:"+id, m.writer, m.logger)
	cartStore.Hydrate(ctx, m.kv)
	favStore := favourites.NewStore("favourites:"+id, m.writer, m.logger)
	favStore.Hydrate(ctx, m.kv)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have hydrated the same session concurrently.
	if sess, ok := m.sessions[id]; ok {
		return sess
	}

	sess := &Session{ID: id, Cart: cartStore, Favourites: favStore}
	m.sessions[id] = sess
	return sess
}

type contextKey string

const sessionKey contextKey = "session"

// Middleware assigns a session cookie when missing and attaches the
// session's stores to the request context.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				id = cookie.Value
			}

			if id == "" {
				id = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess := m.Get(r.Context(), id)
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts the session attached by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*Session)
	return sess, ok
}
