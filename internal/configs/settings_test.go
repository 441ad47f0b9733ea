package configs

import (
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsPartialFile(t *testing.T) {
	dir := t.TempDir()
	content := "[naming]\nexperiment_prefix = \"run\"\n\n[archive]\nexclude = [\"**/*.tmp\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(content), 0600))

	s, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "run", s.Naming.ExperimentPrefix)
	assert.Equal(t, DefaultProjectPrefix, s.Naming.ProjectPrefix)
	assert.Equal(t, DefaultArchiveFormat, s.Archive.Format)
	assert.Equal(t, []string{"**/*.tmp"}, s.Archive.Exclude)
}

func TestLoadSettingsCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("[naming\n"), 0600))

	_, err := LoadSettings(dir)
	assert.ErrorIs(t, err, kerrors.ErrConfigCorrupt)
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := DefaultSettings()
	s.Archive.Format = "zip"
	require.NoError(t, SaveSettings(dir, s))

	loaded, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}
