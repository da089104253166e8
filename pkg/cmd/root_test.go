package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, versionCmd(&Version{Version: "1.2.3", Commit: "abc123", Timestamp: "2026-10-18"}), "")
	require.NoError(t, err)
	require.Equal(t, "Version: 1.2.3\nCommit: abc123\nDate: 2026-10-18\n", out)
}

func TestLoadConfig_DefaultsWithoutConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runApp(t, execCmd(nil), "select 1 as one\n", "-")
	require.NoError(t, err)
	require.Equal(t, "one\n---\n1\n\n1 row selected\n", out)
}
