package auth

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"schulbib/internal/config"
	"schulbib/internal/entities"
)

// Session data keys
const (
	SessionKeyLibrarianID = "librarian_id"
	SessionKeyDisplayName = "display_name"
)

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the
// application's SQLite database. The sqlDB parameter should be the
// underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.SessionLifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession creates a new session after successful authentication.
func (sm *SessionManager) CreateSession(r *http.Request, librarian *entities.Librarian) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyLibrarianID, int(librarian.ID))
	sm.Put(r.Context(), SessionKeyDisplayName, librarian.FirstName+" "+librarian.LastName)

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetLibrarianID retrieves the librarian ID from the session.
// Returns 0 if not authenticated.
func (sm *SessionManager) GetLibrarianID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyLibrarianID))
}

// GetDisplayName retrieves the librarian's display name from the session.
func (sm *SessionManager) GetDisplayName(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyDisplayName)
}

// IsAuthenticated returns true if the request carries a valid session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.GetLibrarianID(r) != 0
}
