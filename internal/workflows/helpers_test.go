package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PolarWolf314/modelorg/internal/configs"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	home      string
	configDir string
	parent    string
	store     *configs.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	env := &testEnv{
		home:      home,
		configDir: filepath.Join(home, ".config", "modelorg"),
		parent:    filepath.Join(home, "research"),
	}
	require.NoError(t, os.MkdirAll(env.parent, 0755))
	env.store = env.reload(t)
	return env
}

// reload opens a fresh store over the same directories, as a new invocation would.
func (env *testEnv) reload(t *testing.T) *configs.Store {
	t.Helper()
	s := configs.New(env.configDir, env.home)
	s.Now = func() time.Time { return fixedNow }
	require.NoError(t, s.Load())
	env.store = s
	return s
}

func (env *testEnv) setup(t *testing.T, name string) *SetupResult {
	t.Helper()
	result, err := Setup(context.Background(), env.store, SetupOptions{Parent: env.parent, Name: name})
	require.NoError(t, err)
	return result
}

func (env *testEnv) init(t *testing.T, id string) *InitResult {
	t.Helper()
	result, err := Init(context.Background(), env.store, InitOptions{Experiment: id})
	require.NoError(t, err)
	return result
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
