package configs

import (
	"errors"
	"fmt"
	"io/fs"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
)

// Settings are the user's tool preferences, read from settings.toml in the
// configuration directory. A missing file yields DefaultSettings.
type Settings struct {
	Naming  NamingSettings  `toml:"naming"`
	Archive ArchiveSettings `toml:"archive"`
}

// NamingSettings control synthesized project and experiment names.
type NamingSettings struct {
	ProjectPrefix    string `toml:"project_prefix"`
	ExperimentPrefix string `toml:"experiment_prefix"`
}

// ArchiveSettings control how projects are packed.
type ArchiveSettings struct {
	Format  string   `toml:"format"`
	Exclude []string `toml:"exclude"`
}

const (
	DefaultProjectPrefix    = "project"
	DefaultExperimentPrefix = "experiment"
	DefaultArchiveFormat    = "tar"
)

func DefaultSettings() *Settings {
	return &Settings{
		Naming: NamingSettings{
			ProjectPrefix:    DefaultProjectPrefix,
			ExperimentPrefix: DefaultExperimentPrefix,
		},
		Archive: ArchiveSettings{Format: DefaultArchiveFormat},
	}
}

// LoadSettings reads settings.toml from configDir, filling unset fields with defaults.
func LoadSettings(configDir string) (*Settings, error) {
	s := DefaultSettings()
	err := LoadTOML(paths.SettingsPath(configDir), s)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %v", kerrors.ErrConfigCorrupt, err)
	}
	if s.Naming.ProjectPrefix == "" {
		s.Naming.ProjectPrefix = DefaultProjectPrefix
	}
	if s.Naming.ExperimentPrefix == "" {
		s.Naming.ExperimentPrefix = DefaultExperimentPrefix
	}
	if s.Archive.Format == "" {
		s.Archive.Format = DefaultArchiveFormat
	}
	return s, nil
}

func SaveSettings(configDir string, s *Settings) error {
	return SaveTOML(paths.SettingsPath(configDir), s)
}
