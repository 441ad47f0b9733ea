package workflows

import (
	"fmt"

	"github.com/PolarWolf314/modelorg/internal/audit"
	"github.com/PolarWolf314/modelorg/internal/configs"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	logger "github.com/PolarWolf314/modelorg/internal/logging"
	"github.com/PolarWolf314/modelorg/internal/resolver"
)

// Log is the logger workflows report progress to. The cmd layer replaces it
// once flags are parsed.
var Log logger.Logger

// Operation names recorded in timestamps and history.
const (
	OpSetup     = "setup"
	OpInit      = "init"
	OpArchive   = "archive"
	OpUnarchive = "unarchive"
	OpRemove    = "remove"
	OpSetValue  = "set-value"
	OpDelValue  = "del-value"
	OpSettings  = "settings"
)

// selectProject resolves an explicit project, else the owner of an
// experiment, else the current project.
func selectProject(store *configs.Store, project, experiment string, match bool) (string, error) {
	if project != "" {
		return resolver.ResolveProject(store.Global, resolver.Options{Identifier: project, Match: match})
	}
	if experiment != "" {
		id, err := resolver.ResolveExperiment(store.Global, resolver.Options{Identifier: experiment, Match: match})
		if err != nil {
			return "", err
		}
		owner, _ := store.Global.ExperimentProject(id)
		return owner, nil
	}
	return resolver.ResolveProject(store.Global, resolver.Options{})
}

// loadExperiment resolves and loads an experiment, optionally restricted to a project.
func loadExperiment(store *configs.Store, experiment, project string, match bool) (*configs.ExperimentConfig, error) {
	id, err := resolver.ResolveExperiment(store.Global, resolver.Options{
		Identifier: experiment,
		Match:      match,
		Project:    project,
	})
	if err != nil {
		return nil, err
	}
	e, err := store.Experiment(id)
	if err != nil {
		return nil, fmt.Errorf("loading experiment %q: %w", id, err)
	}
	return e, nil
}

func requireActive(store *configs.Store, project string) error {
	if store.IsArchived(project) {
		container, _ := store.Global.ArchivedContainer(project)
		return fmt.Errorf("%w: project %q is archived in %s", kerrors.ErrAlreadyArchived, project, container)
	}
	return nil
}

func record(store *configs.Store, entry audit.Entry) {
	audit.Log(store.ConfigDir, entry)
}
