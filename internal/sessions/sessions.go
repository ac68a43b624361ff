// Package sessions provides the per-visitor ephemeral store. Values live in
// an scs session persisted to SQLite and disappear when the session expires.
package sessions

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager

	store     *sqlite3store.SQLite3Store
	closeOnce sync.Once
}

// Config controls session cookies and lifetime.
type Config struct {
	Lifetime      time.Duration
	SecureCookies bool
}

// NewManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg Config) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	store := sqlite3store.New(sqlDB)
	sm := scs.New()
	sm.Store = store

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
		sm.IdleTimeout = cfg.Lifetime / 2
	}

	sm.Cookie.Name = "quote_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	// Session-only cookie: dropped by the browser when it closes.
	sm.Cookie.Persist = false

	return &Manager{SessionManager: sm, store: store}, nil
}

// Close stops the background sweep of expired sessions. It is safe to call
// more than once.
func (m *Manager) Close() {
	m.closeOnce.Do(m.store.StopCleanup)
}

// Store returns a key/value view of the session loaded into ctx.
// ctx must come from a request that went through Middleware.
func (m *Manager) Store(ctx context.Context) *Store {
	return &Store{sm: m.SessionManager, ctx: ctx}
}

// Store is a key/value store over a single session. It satisfies
// quotes.KeyValueStore.
type Store struct {
	sm  *scs.SessionManager
	ctx context.Context
}

func (s *Store) Get(key string) (string, bool, error) {
	if !s.sm.Exists(s.ctx, key) {
		return "", false, nil
	}
	return s.sm.GetString(s.ctx, key), true, nil
}

func (s *Store) Set(key, value string) error {
	s.sm.Put(s.ctx, key, value)
	return nil
}
