package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storekit/storeadm/internal/session"
)

func TestWhoami(t *testing.T) {
	dir := setupState(t)
	loginForTest(t, dir)

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/auth/profile", r.URL.Path)
		assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
		w.Write([]byte(mockProfileResponse))
	}))
	defer mockServer.Close()
	t.Setenv("API_ENDPOINT", mockServer.URL)

	output := captureStdout(t, func() {
		cmd := NewWhoamiCommand()
		cmd.SetArgs([]string{})
		assert.NoError(t, cmd.Execute())
	})

	assert.Contains(t, output, "Name:  Admin")
	assert.Contains(t, output, "Email: admin@example.com")
}

func TestWhoamiRejectedTokenForcesLogout(t *testing.T) {
	dir := setupState(t)
	loginForTest(t, dir)

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer mockServer.Close()
	t.Setenv("API_ENDPOINT", mockServer.URL)

	cmd := NewWhoamiCommand()
	cmd.SetArgs([]string{})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := captureStdoutErr(t, cmd)
	assert.Error(t, err)

	// The rejected token is purged and the one-shot flag recorded, so the
	// next login run can explain what happened.
	sess := session.NewManager(dir, nil)
	assert.False(t, sess.Authenticated(), "tokens are purged on a 401")
	assert.True(t, sess.ConsumeUnauthorizedFlag())
}
