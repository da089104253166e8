package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSFamily(t *testing.T) {
	require.Equal(t, OS{Windows: true}, osFamily("windows"))
	require.Equal(t, OS{Mac: true}, osFamily("darwin"))
	require.Equal(t, OS{Nix: true}, osFamily("linux"))
	require.Equal(t, OS{Nix: true}, osFamily("aix"))
	require.Equal(t, OS{}, osFamily("plan9"))
}

func TestSettingsPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("APPDATA", `C:\Users\tester\AppData\Roaming`)

	path := SettingsPath()
	if CurrentOS().Windows {
		require.Equal(t, filepath.Join(`C:\Users\tester\AppData\Roaming`, "cmdreg"), path)
		return
	}

	require.Equal(t, filepath.Join("/home/tester", ".cmdreg"), path)
	require.Equal(t, string(filepath.Separator), DirSeparator())
}
