package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/modelorg/internal/archive"
	"github.com/PolarWolf314/modelorg/internal/audit"
	"github.com/PolarWolf314/modelorg/internal/configs"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
)

// Setting keys, named after their section and key in settings.toml.
const (
	SettingProjectPrefix    = "naming.project_prefix"
	SettingExperimentPrefix = "naming.experiment_prefix"
	SettingArchiveFormat    = "archive.format"
	SettingArchiveExclude   = "archive.exclude"
)

// SettingKeys lists every key SetSetting accepts.
var SettingKeys = []string{
	SettingProjectPrefix,
	SettingExperimentPrefix,
	SettingArchiveFormat,
	SettingArchiveExclude,
}

// SettingOptions configures the settings workflow.
type SettingOptions struct {
	Key string
	// Value is the new value. archive.exclude takes a comma-separated list.
	Value string
	// Unset restores the default instead of using Value.
	Unset bool
}

// SettingResult contains the settings after the change and where they were written.
type SettingResult struct {
	Path     string
	Settings *configs.Settings
}

// SetSetting validates and stores one tool setting, then rewrites
// settings.toml. Returns ErrInvalidValue for unknown keys and bad values.
func SetSetting(ctx context.Context, store *configs.Store, opts SettingOptions) (*SettingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := *store.Settings
	s.Archive.Exclude = append([]string(nil), store.Settings.Archive.Exclude...)
	defaults := configs.DefaultSettings()

	switch opts.Key {
	case SettingProjectPrefix, SettingExperimentPrefix:
		value := opts.Value
		if opts.Unset {
			value = defaults.Naming.ProjectPrefix
			if opts.Key == SettingExperimentPrefix {
				value = defaults.Naming.ExperimentPrefix
			}
		}
		if err := validPrefix(value); err != nil {
			return nil, err
		}
		if opts.Key == SettingProjectPrefix {
			s.Naming.ProjectPrefix = value
		} else {
			s.Naming.ExperimentPrefix = value
		}
	case SettingArchiveFormat:
		value := opts.Value
		if opts.Unset {
			value = defaults.Archive.Format
		}
		if _, err := archive.Lookup(value); err != nil {
			return nil, err
		}
		s.Archive.Format = value
	case SettingArchiveExclude:
		var patterns []string
		if !opts.Unset {
			for _, p := range strings.Split(opts.Value, ",") {
				if p = strings.TrimSpace(p); p != "" {
					patterns = append(patterns, p)
				}
			}
		}
		if err := archive.ValidatePatterns(patterns); err != nil {
			return nil, err
		}
		s.Archive.Exclude = patterns
	default:
		return nil, fmt.Errorf("%w: unknown setting %q, expected one of %s",
			kerrors.ErrInvalidValue, opts.Key, strings.Join(SettingKeys, ", "))
	}

	if err := configs.SaveSettings(store.ConfigDir, &s); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	store.Settings = &s
	Log.Infof("Setting %s updated", opts.Key)

	record(store, audit.Entry{Operation: OpSettings, Key: opts.Key})
	return &SettingResult{Path: paths.SettingsPath(store.ConfigDir), Settings: &s}, nil
}

func validPrefix(prefix string) error {
	if prefix == "" || strings.ContainsAny(prefix, `/\ `) {
		return fmt.Errorf("%w: name prefix %q must be non-empty without slashes or spaces", kerrors.ErrInvalidValue, prefix)
	}
	return nil
}
