package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/PolarWolf314/modelorg/internal/audit"
	"github.com/PolarWolf314/modelorg/internal/configs"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/PolarWolf314/modelorg/internal/resolver"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	// Experiment selects the experiment to remove, or with All, its project.
	Experiment string
	// Project selects the project. With All it is removed entirely; without,
	// it restricts which experiment Experiment may resolve to.
	Project string
	Match   bool

	// All removes the whole project and every experiment it owns.
	All bool

	// Yes skips confirmation.
	Yes bool
	// Confirm is asked when Yes is not set. A nil Confirm declines.
	Confirm func(prompt string) bool
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	Project     string
	Experiments []string
	// Root is set when the project root was deleted.
	Root string
}

// Remove deletes an experiment, or with All a whole project, from disk and
// from the configuration.
//
// Returns ErrNotFound if the target does not resolve and ErrNotConfirmed if
// confirmation was declined.
func Remove(ctx context.Context, store *configs.Store, opts RemoveOptions) (*RemoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.All {
		return removeProject(store, opts)
	}
	return removeExperiment(store, opts)
}

func confirmed(opts RemoveOptions, prompt string) error {
	if opts.Yes {
		return nil
	}
	if opts.Confirm != nil && opts.Confirm(prompt) {
		return nil
	}
	return fmt.Errorf("%w: %s", kerrors.ErrNotConfirmed, prompt)
}

func removeProject(store *configs.Store, opts RemoveOptions) (*RemoveResult, error) {
	name, err := selectProject(store, opts.Project, opts.Experiment, opts.Match)
	if err != nil {
		return nil, err
	}
	ids := store.Global.ExperimentsOf(name)

	prompt := fmt.Sprintf("Remove project %s and its %d experiment(s)?", name, len(ids))
	if err := confirmed(opts, prompt); err != nil {
		return nil, err
	}

	result := &RemoveResult{Project: name, Experiments: ids}
	if root, ok := store.Global.ProjectRoot(name); ok {
		if _, err := os.Lstat(root); err == nil {
			Log.Debugf("Deleting project root %s", root)
			if err := os.RemoveAll(root); err != nil {
				return nil, fmt.Errorf("deleting %s: %w", root, err)
			}
			result.Root = root
		}
	}

	for _, id := range ids {
		store.Global.DeleteExperiment(id)
	}
	store.DropProject(name)
	store.Global.DeleteProject(name)

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}
	Log.Infof("Removed project %s", name)

	record(store, audit.Entry{Operation: OpRemove, Project: name, Experiments: ids})
	return result, nil
}

func removeExperiment(store *configs.Store, opts RemoveOptions) (*RemoveResult, error) {
	id, err := resolver.ResolveExperiment(store.Global, resolver.Options{
		Identifier: opts.Experiment,
		Match:      opts.Match,
		Project:    opts.Project,
	})
	if err != nil {
		return nil, err
	}
	owner, _ := store.Global.ExperimentProject(id)
	if err := requireActive(store, owner); err != nil {
		return nil, err
	}

	p, err := store.Project(owner)
	if err != nil {
		return nil, err
	}
	e, err := store.Experiment(id)
	if err != nil && !errors.Is(err, kerrors.ErrNotFound) {
		return nil, err
	}

	if err := confirmed(opts, fmt.Sprintf("Remove experiment %s of project %s?", id, owner)); err != nil {
		return nil, err
	}

	expdir := paths.ExperimentDir(p.Root(), id)
	if e != nil && e.ExpDir() != "" {
		expdir = e.ExpDir()
	}
	Log.Debugf("Deleting experiment directory %s", expdir)
	if err := os.RemoveAll(expdir); err != nil {
		return nil, fmt.Errorf("deleting %s: %w", expdir, err)
	}
	if err := os.Remove(paths.ExperimentDocPath(p.Root(), id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("deleting configuration of %s: %w", id, err)
	}

	p.RemoveExperiment(id)
	store.DropExperiment(id)
	store.Global.DeleteExperiment(id)
	if store.Global.CurrentExperiment() == "" {
		if remaining := store.Global.ExperimentsOf(owner); len(remaining) > 0 {
			store.Global.SetCurrentExperiment(remaining[len(remaining)-1])
		}
	}

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}
	Log.Infof("Removed experiment %s", id)

	record(store, audit.Entry{Operation: OpRemove, Project: owner, Experiment: id})
	return &RemoveResult{Project: owner, Experiments: []string{id}}, nil
}
