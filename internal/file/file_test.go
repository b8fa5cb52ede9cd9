package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/.molly/config.json")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".molly", "config.json"), expanded)

	// Paths without a tilde pass through untouched.
	unchanged, err := ExpandPath("/etc/molly.json")
	require.NoError(t, err)
	require.Equal(t, "/etc/molly.json", unchanged)
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	ok, err := Exists(path)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Exists(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.False(t, ok)
}
