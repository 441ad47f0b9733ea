package lifecycle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/modelorg/cmd"
	"github.com/PolarWolf314/modelorg/internal/audit"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/PolarWolf314/modelorg/test/integration/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputData = "0.000 0.841 0.909 0.141 -0.757\n"

func TestArchiveAndRestore(t *testing.T) {
	for _, format := range []string{"tar", "zip"} {
		t.Run(format, func(t *testing.T) {
			env := shared.SetupTestEnvironment(t)
			root := filepath.Join(env.WorkDir, "trigo")
			input := filepath.Join(root, "experiments", "sine", "input.dat")

			out := env.MustRun(t, "setup", "trigo")
			assert.Contains(t, out, "Project 'trigo' set up")
			env.MustRun(t, "init", "sine", "--description", "fit a sine wave")
			env.MustRun(t, "set-value", "a.b", "12", "--dtype", "int")
			shared.WriteFile(t, input, inputData)

			out = env.MustRun(t, "get-value", "a.b")
			assert.Equal(t, "12\n", out)

			env.MustRun(t, "archive", "--remove", "--format", format)
			container := filepath.Join(env.WorkDir, "trigo."+format)
			assert.FileExists(t, container)
			assert.NoDirExists(t, root)

			out, err := env.Run(t, "get-value", "a.b", "--id", "sine")
			assert.ErrorIs(t, err, kerrors.ErrAlreadyArchived)
			assert.Contains(t, out, "modelorg unarchive")

			out = env.MustRun(t, "unarchive", "--id", "sine", "--complete")
			assert.Contains(t, out, "restored to "+root)

			got, err := os.ReadFile(input)
			require.NoError(t, err)
			assert.Equal(t, inputData, string(got))

			out = env.MustRun(t, "get-value", "a.b")
			assert.Equal(t, "12\n", out)
			out = env.MustRun(t, "get-value", "description")
			assert.Equal(t, "fit a sine wave\n", out)

			env.MustRun(t, "del-value", "a.b")
			_, err = env.Run(t, "get-value", "a.b")
			assert.ErrorIs(t, err, kerrors.ErrKeyNotFound)
		})
	}
}

func TestRestoreAfterProjectWasRemoved(t *testing.T) {
	env := shared.SetupTestEnvironment(t)
	env.MustRun(t, "setup", "trigo")
	env.MustRun(t, "init", "sine")
	shared.WriteFile(t, filepath.Join(env.WorkDir, "trigo", "experiments", "sine", "input.dat"), inputData)

	env.MustRun(t, "archive", "-r")
	env.MustRun(t, "remove", "--all", "--yes", "--project", "trigo")

	out, err := env.Run(t, "info", "--id", "sine")
	assert.ErrorIs(t, err, kerrors.ErrNotFound)
	assert.Contains(t, out, "✗")

	env.MustRun(t, "unarchive", "--id", "sine", "-f", "trigo.tar")

	out = env.MustRun(t, "info", "--id", "sine", "--relative")
	assert.True(t, strings.HasPrefix(out, "id: sine\n"), out)
	assert.Contains(t, out, "expdir: ./experiments/sine")

	got, err := os.ReadFile(filepath.Join(env.WorkDir, "trigo", "experiments", "sine", "input.dat"))
	require.NoError(t, err)
	assert.Equal(t, inputData, string(got))
}

func TestAmbiguousPatternListsMatches(t *testing.T) {
	env := shared.SetupTestEnvironment(t)
	env.MustRun(t, "setup", "trigo")
	env.MustRun(t, "init", "main_a")
	env.MustRun(t, "init", "main_b")

	out, err := env.Run(t, "get-value", "project", "--id", "main.*", "--match")
	assert.ErrorIs(t, err, kerrors.ErrAmbiguousMatch)
	assert.Contains(t, out, "main_a")
	assert.Contains(t, out, "main_b")

	out = env.MustRun(t, "get-value", "project", "--id", "main_a")
	assert.Equal(t, "trigo\n", out)
}

func TestSynthesizedNames(t *testing.T) {
	env := shared.SetupTestEnvironment(t)
	shared.WriteFile(t, paths.SettingsPath(env.ConfigDir), "[naming]\nproject_prefix = \"p\"\n")

	for i := 0; i < 3; i++ {
		env.MustRun(t, "setup")
	}
	env.MustRun(t, "remove", "--all", "--yes", "--project", "p1")
	out := env.MustRun(t, "setup")
	assert.Contains(t, out, "Project 'p3' set up")

	env.MustRun(t, "init", "test_main4")
	out = env.MustRun(t, "init", "--new")
	assert.Contains(t, out, "Experiment 'test_main5' created")
}

func TestRemoveNeedsConfirmation(t *testing.T) {
	env := shared.SetupTestEnvironment(t)
	env.MustRun(t, "setup", "trigo")
	env.MustRun(t, "init", "sine")

	out, err := env.Run(t, "remove")
	assert.ErrorIs(t, err, kerrors.ErrNotConfirmed)
	assert.Contains(t, out, "--yes")
	assert.DirExists(t, filepath.Join(env.WorkDir, "trigo", "experiments", "sine"))

	// Run would reset the prompt, so execute the tree directly.
	cmd.SetConfirm(func(string) bool { return true })
	root := cmd.GetRootCmd()
	root.SetArgs([]string{"--config-dir", env.ConfigDir, "remove"})
	require.NoError(t, root.Execute())
	assert.NoDirExists(t, filepath.Join(env.WorkDir, "trigo", "experiments", "sine"))
}

func TestInvalidFlagValues(t *testing.T) {
	env := shared.SetupTestEnvironment(t)
	env.MustRun(t, "setup", "trigo")
	env.MustRun(t, "init", "sine")

	_, err := env.Run(t, "set-value", "x", "1", "--dtype", "complex")
	assert.Error(t, err)

	_, err = env.Run(t, "set-value", "x", "one", "--dtype", "int")
	assert.ErrorIs(t, err, kerrors.ErrInvalidValue)

	_, err = env.Run(t, "archive", "--format", "rar")
	assert.Error(t, err)
}

func TestInfoAndHistory(t *testing.T) {
	env := shared.SetupTestEnvironment(t)
	env.MustRun(t, "setup", "trigo")
	env.MustRun(t, "init", "sine")

	out := env.MustRun(t, "info", "--scope", "global", "--path")
	assert.Equal(t, paths.GlobalDocPath(env.ConfigDir)+"\n", out)

	out = env.MustRun(t, "info", "--scope", "global", "--relative")
	assert.Contains(t, out, "trigo: ./work/trigo")

	out = env.MustRun(t, "history", "--json")
	var entries []audit.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "setup", entries[0].Operation)
	assert.Equal(t, "init", entries[1].Operation)
}

func TestBanner(t *testing.T) {
	env := shared.SetupTestEnvironment(t)

	out := env.MustRun(t)
	assert.Contains(t, out, "modelorg --help")
}

func TestSettingsCommand(t *testing.T) {
	env := shared.SetupTestEnvironment(t)

	out := env.MustRun(t, "settings", "set", "naming.project_prefix", "p")
	assert.Contains(t, out, paths.SettingsPath(env.ConfigDir))
	env.MustRun(t, "settings", "set", "archive.exclude", "**/*.tmp")

	out = env.MustRun(t, "settings", "show")
	assert.Contains(t, out, `project_prefix = "p"`)
	assert.Contains(t, out, `"**/*.tmp"`)

	out = env.MustRun(t, "setup")
	assert.Contains(t, out, "Project 'p0' set up")

	_, err := env.Run(t, "settings", "set", "archive.format", "rar")
	assert.ErrorIs(t, err, kerrors.ErrInvalidValue)
}
