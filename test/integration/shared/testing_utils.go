// Package shared contains testing utilities shared between integration tests.
// It isolates each test in its own home, configuration and working directory
// and runs the real cobra command tree against them.
package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/modelorg/cmd"
	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/stretchr/testify/require"
)

// Env describes the directories one integration test runs in.
type Env struct {
	Home      string
	ConfigDir string
	WorkDir   string
}

// SetupTestEnvironment points HOME at a temp directory and changes into a
// working directory below it. Everything is restored on cleanup.
func SetupTestEnvironment(t *testing.T) *Env {
	t.Helper()

	home, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	env := &Env{
		Home:      home,
		ConfigDir: filepath.Join(home, ".config", paths.AppName),
		WorkDir:   filepath.Join(home, "work"),
	}
	require.NoError(t, os.MkdirAll(env.WorkDir, 0755))

	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "1")
	t.Setenv(paths.EnvConfigDir, "")

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(env.WorkDir))
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		cmd.ResetGlobalState()
	})

	cmd.ResetGlobalState()
	return env
}

// Run executes the CLI with args and returns everything it printed.
func (e *Env) Run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd.ResetGlobalState()

	var out bytes.Buffer
	root := cmd.GetRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", e.ConfigDir}, args...))

	err := root.Execute()
	return out.String(), err
}

// MustRun is Run that fails the test on error.
func (e *Env) MustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.Run(t, args...)
	require.NoError(t, err, "modelorg %v failed:\n%s", args, out)
	return out
}

// WriteFile creates path with content, making parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
