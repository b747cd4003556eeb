package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })
	Version, GitCommit = "1.2.3", "abc123"

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Version:    1.2.3")
	assert.Contains(t, buf.String(), "Git commit: abc123")
}

func TestMigrateSQLite(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "cli.db"))

	run := func(args ...string) string {
		buf := new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs(args)
		t.Cleanup(func() { rootCmd.SetArgs(nil) })
		require.NoError(t, rootCmd.Execute())
		return buf.String()
	}

	assert.Contains(t, run("migrate", "up"), "database at version 1")
	assert.Contains(t, run("migrate", "up"), "database at version 1")
	assert.Contains(t, run("migrate", "down", "--steps", "1"), "rolled back 1 migration(s)")
}
