// Package session configures the admin session manager and the values the
// console keeps in it.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vorokhovskii-creator/felix-hub/internal/store"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Session keys.
const (
	keyID       = "sid"
	keyLanguage = "lang"
	keyUser     = "admin_user"
)

// Config selects the session backend.
type Config struct {
	Store    string
	DBPath   string
	RedisURL string
	IsDev    bool
	Lifetime time.Duration
}

// New creates a session manager for cfg. The returned close function
// releases the backend (database or Redis connection).
func New(cfg Config) (*scs.SessionManager, func() error, error) {
	sm := scs.New()
	closeFn := func() error { return nil }

	switch cfg.Store {
	case "", StoreMemory:
		// scs defaults to its in-memory store
	case StoreSQLite:
		db, err := openSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		st := sqlite3store.New(db)
		sm.Store = st
		closeFn = func() error {
			st.StopCleanup()
			return db.Close()
		}
	case StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		sm.Store = goredisstore.NewWithPrefix(client, "felix:session:")
		closeFn = client.Close
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}

	configure(sm, cfg)
	return sm, closeFn, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("session database path is required")
	}
	db, err := store.NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func configure(sm *scs.SessionManager, cfg Config) {
	sm.Lifetime = 24 * time.Hour
	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !cfg.IsDev
	if !cfg.IsDev {
		// __Host- requires Secure, Path=/ and no Domain
		sm.Cookie.Name = "__Host-session"
	}
}

// ID returns the console's stable identifier for the current session,
// creating one on first use. It survives token renewal on login.
func ID(ctx context.Context, sm *scs.SessionManager) string {
	id := sm.GetString(ctx, keyID)
	if id == "" {
		id = uuid.NewString()
		sm.Put(ctx, keyID, id)
	}
	return id
}

// Language returns the language stored in the session, if any.
func Language(ctx context.Context, sm *scs.SessionManager) string {
	return sm.GetString(ctx, keyLanguage)
}

// SetLanguage stores the language in the session.
func SetLanguage(ctx context.Context, sm *scs.SessionManager, lang string) {
	sm.Put(ctx, keyLanguage, lang)
}

// User returns the logged-in admin username, or "".
func User(ctx context.Context, sm *scs.SessionManager) string {
	return sm.GetString(ctx, keyUser)
}

// Login renews the session token and records the admin username.
func Login(ctx context.Context, sm *scs.SessionManager, username string) error {
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	sm.Put(ctx, keyUser, username)
	return nil
}

// Logout removes the admin username and renews the token.
func Logout(ctx context.Context, sm *scs.SessionManager) error {
	sm.Remove(ctx, keyUser)
	return sm.RenewToken(ctx)
}
