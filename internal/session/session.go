// Package session owns the persisted login state. Tokens and the one-shot
// forced-logout flag live in a single credentials file with one owner (the
// Manager); other components never touch the file directly.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

const credentialsFile = "credentials.json"

// ErrNotLoggedIn is returned by RequireAuth when no access token is stored.
var ErrNotLoggedIn = errors.New("not logged in, run 'storeadm login' first")

// credentials is the on-disk shape. Absence of the access token is the
// sole signal of "logged out".
type credentials struct {
	AccessToken     string `json:"access_token,omitempty"`
	RefreshToken    string `json:"refresh_token,omitempty"`
	WasUnauthorized bool   `json:"was_unauthorized,omitempty"`
}

// Manager reads and writes the credentials file under the state directory.
// It implements api.TokenSource.
type Manager struct {
	mu  sync.Mutex
	dir string
	log *logrus.Logger
}

// NewManager creates a manager over the given state directory.
func NewManager(dir string, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{dir: dir, log: log}
}

func (m *Manager) path() string {
	return filepath.Join(m.dir, credentialsFile)
}

// load reads the credentials file. Missing or corrupt files read as
// logged out.
func (m *Manager) load() credentials {
	var c credentials
	data, err := os.ReadFile(m.path())
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return credentials{}
	}
	return c
}

func (m *Manager) save(c credentials) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}
	if err := os.WriteFile(m.path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// AccessToken returns the stored access token, or "" when logged out.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load().AccessToken
}

// Authenticated reports whether an access token is present.
func (m *Manager) Authenticated() bool {
	return m.AccessToken() != ""
}

// RequireAuth is the synchronous gate checked before any protected
// operation runs.
func (m *Manager) RequireAuth() error {
	if !m.Authenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

// StoreTokens persists a fresh token pair after a successful login and
// clears any leftover forced-logout flag.
func (m *Manager) StoreTokens(accessToken, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.Debug("storing session tokens")
	return m.save(credentials{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Logout purges both tokens. Explicit, user-initiated.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.Debug("clearing session")
	return m.save(credentials{})
}

// ForceLogout purges both tokens and persists the one-shot flag recording
// that the session was terminated by the server rejecting a request.
func (m *Manager) ForceLogout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.Debug("session rejected by server, forcing logout")
	if err := m.save(credentials{WasUnauthorized: true}); err != nil {
		m.log.WithError(err).Warn("failed to persist forced logout")
	}
}

// ConsumeUnauthorizedFlag reads and clears the forced-logout flag. The
// explanatory banner is shown exactly once.
func (m *Manager) ConsumeUnauthorizedFlag() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.load()
	if !c.WasUnauthorized {
		return false
	}
	c.WasUnauthorized = false
	if err := m.save(c); err != nil {
		m.log.WithError(err).Warn("failed to clear forced-logout flag")
	}
	return true
}
