package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "access-token")
	store, err := NewCredentialStore(path)
	require.NoError(t, err)

	// Empty before anything is written.
	token, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Write("tok-123"))

	token, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	// The credential file must not be world readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Remove())
	token, err = store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Removing twice is fine.
	assert.NoError(t, store.Remove())
}

func TestCredentialStoreOverwrite(t *testing.T) {
	store, err := NewCredentialStore(filepath.Join(t.TempDir(), "access-token"))
	require.NoError(t, err)

	require.NoError(t, store.Write("first"))
	require.NoError(t, store.Write("second"))

	token, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}
