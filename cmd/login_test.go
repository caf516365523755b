package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storekit/storeadm/internal/session"
	"github.com/storekit/storeadm/internal/validator"
)

const mockLoginResponse = `{"access_token":"fresh-access-token","refresh_token":"fresh-refresh-token"}`
const mockProfileResponse = `{"id":1,"email":"admin@example.com","name":"Admin","role":"admin"}`

func TestLoginStoresTokens(t *testing.T) {
	dir := setupState(t)

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/auth/login":
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "admin@example.com", req["email"])
			assert.Equal(t, "secret", req["password"])
			w.Write([]byte(mockLoginResponse))
		case r.Method == "GET" && r.URL.Path == "/auth/profile":
			assert.Equal(t, "Bearer fresh-access-token", r.Header.Get("Authorization"))
			w.Write([]byte(mockProfileResponse))
		default:
			http.Error(w, "route not found", http.StatusNotFound)
		}
	}))
	defer mockServer.Close()
	t.Setenv("API_ENDPOINT", mockServer.URL)

	// Password is read from stdin; outside a terminal the plain reader is
	// used.
	feedStdin(t, "secret\n")

	output := captureStdout(t, func() {
		cmd := NewLoginCommand()
		cmd.SetArgs([]string{"--email", "admin@example.com"})
		assert.NoError(t, cmd.Execute())
	})

	assert.Contains(t, output, "Logged in as Admin <admin@example.com>")

	sess := session.NewManager(dir, nil)
	assert.Equal(t, "fresh-access-token", sess.AccessToken())
}

func TestLoginRejectsInvalidEmailBeforeNetwork(t *testing.T) {
	setupState(t)

	var called bool
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		http.Error(w, "should not be reached", http.StatusInternalServerError)
	}))
	defer mockServer.Close()
	t.Setenv("API_ENDPOINT", mockServer.URL)

	feedStdin(t, "secret\n")

	cmd := NewLoginCommand()
	cmd.SetArgs([]string{"--email", "not-an-email"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := captureStdoutErr(t, cmd)

	assert.ErrorIs(t, err, validator.ErrInvalidInput)
	assert.False(t, called, "invalid input never reaches the network")
}

func TestLoginWithBadCredentials(t *testing.T) {
	dir := setupState(t)

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer mockServer.Close()
	t.Setenv("API_ENDPOINT", mockServer.URL)

	feedStdin(t, "wrong\n")

	cmd := NewLoginCommand()
	cmd.SetArgs([]string{"--email", "admin@example.com"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := captureStdoutErr(t, cmd)
	assert.Error(t, err)

	// A rejected login is a bad credential, not a session expiry: no
	// forced-logout flag is recorded.
	sess := session.NewManager(dir, nil)
	assert.False(t, sess.ConsumeUnauthorizedFlag())
}

func TestLoginConsumesForcedLogoutFlag(t *testing.T) {
	dir := setupState(t)

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(mockLoginResponse))
		case "/auth/profile":
			w.Write([]byte(mockProfileResponse))
		default:
			http.Error(w, "route not found", http.StatusNotFound)
		}
	}))
	defer mockServer.Close()
	t.Setenv("API_ENDPOINT", mockServer.URL)

	// Simulate an earlier request that came back 401.
	session.NewManager(dir, nil).ForceLogout()

	feedStdin(t, "secret\n")
	captureStdout(t, func() {
		cmd := NewLoginCommand()
		cmd.SetArgs([]string{"--email", "admin@example.com"})
		assert.NoError(t, cmd.Execute())
	})

	// The banner is one-shot: the flag is gone after the login run.
	sess := session.NewManager(dir, nil)
	assert.False(t, sess.ConsumeUnauthorizedFlag())
	assert.Equal(t, "fresh-access-token", sess.AccessToken())
}

// captureStdoutErr executes cmd with stdout captured and returns its error.
func captureStdoutErr(t *testing.T, cmd interface{ Execute() error }) error {
	t.Helper()
	var err error
	captureStdout(t, func() {
		err = cmd.Execute()
	})
	return err
}
