package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storekit/storeadm/internal/session"
)

// setupState points the state directory at a fresh temp dir so tests never
// touch real credentials or cache files.
func setupState(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STOREADM_STATE_DIR", dir)
	return dir
}

// loginForTest seeds the state directory with a stored token pair.
func loginForTest(t *testing.T, dir string) {
	t.Helper()
	sess := session.NewManager(dir, nil)
	require.NoError(t, sess.StoreTokens("test-access-token", "test-refresh-token"))
}

// captureStdout runs fn with stdout redirected to a pipe and returns what
// was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// feedStdin replaces stdin with a pipe fed the given input.
func feedStdin(t *testing.T, input string) {
	t.Helper()
	oldStdin := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = oldStdin })
	go func() {
		w.Write([]byte(input))
		w.Close()
	}()
}
