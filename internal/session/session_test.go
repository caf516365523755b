package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTokensThenAuthenticated(t *testing.T) {
	m := NewManager(t.TempDir(), nil)

	assert.False(t, m.Authenticated())
	assert.ErrorIs(t, m.RequireAuth(), ErrNotLoggedIn)

	require.NoError(t, m.StoreTokens("access-abc", "refresh-def"))
	assert.True(t, m.Authenticated())
	assert.Equal(t, "access-abc", m.AccessToken())
	assert.NoError(t, m.RequireAuth())
}

func TestLogoutPurgesTokens(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	require.NoError(t, m.StoreTokens("access", "refresh"))

	require.NoError(t, m.Logout())
	assert.False(t, m.Authenticated())
	assert.False(t, m.ConsumeUnauthorizedFlag(), "a user-initiated logout sets no forced-logout flag")
}

func TestForceLogoutSetsOneShotFlag(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, nil)
	require.NoError(t, m.StoreTokens("access", "refresh"))

	m.ForceLogout()

	assert.False(t, m.Authenticated(), "both tokens are purged")
	assert.True(t, m.ConsumeUnauthorizedFlag(), "the flag reads true exactly once")
	assert.False(t, m.ConsumeUnauthorizedFlag(), "and is gone on subsequent reads")

	// A fresh manager over the same directory sees the cleared flag too.
	assert.False(t, NewManager(dir, nil).ConsumeUnauthorizedFlag())
}

func TestLoginAfterForcedLogoutClearsFlag(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	m.ForceLogout()

	require.NoError(t, m.StoreTokens("new-access", "new-refresh"))
	assert.False(t, m.ConsumeUnauthorizedFlag(), "storing fresh tokens clears any leftover flag")
}

func TestCorruptCredentialsFileReadsAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, credentialsFile), []byte("{broken"), 0o600))

	m := NewManager(dir, nil)
	assert.False(t, m.Authenticated())
}

func TestCredentialsFileHasTightPermissions(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, nil)
	require.NoError(t, m.StoreTokens("access", "refresh"))

	info, err := os.Stat(filepath.Join(dir, credentialsFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
