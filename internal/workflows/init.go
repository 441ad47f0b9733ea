package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/modelorg/internal/audit"
	"github.com/PolarWolf314/modelorg/internal/configs"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/PolarWolf314/modelorg/internal/resolver"
	"github.com/PolarWolf314/modelorg/internal/utils"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Experiment is the id to create. If empty, the next "<prefix><N>" is used.
	Experiment string

	// Project owning the new experiment. Defaults to the current project.
	Project string

	Description string

	// New derives a fresh id by bumping the trailing number of Experiment,
	// or of the current experiment when Experiment is empty.
	New bool

	// Match treats Experiment as a pattern naming the experiment to bump.
	// Only valid together with New.
	Match bool
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	Experiment string
	Project    string
	ExpDir     string
}

// Init creates an experiment directory under a project, registers it and
// makes it the current experiment.
//
// Returns ErrPathExists if the id is taken or its directory is not empty,
// ErrAlreadyArchived if the project is archived.
func Init(ctx context.Context, store *configs.Store, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Match && !opts.New {
		return nil, fmt.Errorf("%w: a pattern can only be used with --new", kerrors.ErrInvalidValue)
	}

	projectName, err := resolver.ResolveProject(store.Global, resolver.Options{Identifier: opts.Project})
	if err != nil {
		return nil, err
	}
	if err := requireActive(store, projectName); err != nil {
		return nil, err
	}
	p, err := store.Project(projectName)
	if err != nil {
		return nil, err
	}

	id, err := experimentID(store, opts)
	if err != nil {
		return nil, err
	}
	if owner, ok := store.Global.ExperimentProject(id); ok {
		return nil, fmt.Errorf("%w: experiment %q already exists in project %q", kerrors.ErrPathExists, id, owner)
	}

	expdir := paths.ExperimentDir(p.Root(), id)
	if err := requireEmpty(expdir); err != nil {
		return nil, err
	}
	Log.Debugf("Creating experiment directory %s", expdir)
	if err := os.MkdirAll(expdir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", expdir, err)
	}

	e := configs.NewExperimentConfig(id, projectName, expdir, opts.Description)
	e.Stamp(OpInit, store.Now())
	store.AddExperiment(p, e)
	store.Global.SetCurrentExperiment(id)

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}
	Log.Infof("Experiment %s initialized in project %s", id, projectName)

	record(store, audit.Entry{Operation: OpInit, Project: projectName, Experiment: id})
	return &InitResult{Experiment: id, Project: projectName, ExpDir: expdir}, nil
}

func experimentID(store *configs.Store, opts InitOptions) (string, error) {
	existing := store.Global.Experiments()
	if !opts.New {
		if opts.Experiment != "" {
			return opts.Experiment, nil
		}
		return utils.NextName(store.Settings.Naming.ExperimentPrefix, existing), nil
	}

	base := opts.Experiment
	switch {
	case opts.Match:
		matched, err := resolver.ResolveExperiment(store.Global, resolver.Options{Identifier: opts.Experiment, Match: true})
		if err != nil {
			return "", err
		}
		base = matched
	case base == "":
		base = store.Global.CurrentExperiment()
	}
	if base == "" {
		return utils.NextName(store.Settings.Naming.ExperimentPrefix, existing), nil
	}
	return utils.IncrementName(base, existing), nil
}
