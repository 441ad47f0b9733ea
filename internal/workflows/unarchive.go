package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/modelorg/internal/archive"
	"github.com/PolarWolf314/modelorg/internal/audit"
	"github.com/PolarWolf314/modelorg/internal/configs"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/PolarWolf314/modelorg/internal/resolver"
	"github.com/PolarWolf314/modelorg/internal/utils"
)

// UnarchiveOptions configures the unarchive workflow.
type UnarchiveOptions struct {
	// Project to restore. Defaults to the owner of Experiment, then the
	// base name of Container, then the current project.
	Project    string
	Experiment string
	Match      bool

	// Container is the file to restore from. Defaults to the container the
	// project was archived into.
	Container string

	// Destination is the directory the project root is restored into.
	// Defaults to the parent of the recorded root, else the working directory.
	Destination string

	// Complete requires every experiment registered for the project to be
	// present in the container.
	Complete bool
}

// UnarchiveResult contains the outcome of an unarchive operation.
type UnarchiveResult struct {
	Project     string
	Root        string
	Container   string
	Experiments []string
	// Missing lists registered experiments the container did not hold.
	// They are dropped from the configuration.
	Missing []string
}

// Unarchive restores a project root and its configuration from a container
// and marks the project active again.
//
// Returns ErrAlreadyActive if the project is registered, not archived and
// present on disk, ErrExtract for a missing or malformed container and
// ErrIncompleteArchive when Complete is set and experiments are missing.
func Unarchive(ctx context.Context, store *configs.Store, opts UnarchiveOptions) (*UnarchiveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, experiment, err := unarchiveTarget(store, opts)
	if err != nil {
		return nil, err
	}

	container := opts.Container
	if container == "" {
		recorded, ok := store.Global.ArchivedContainer(name)
		if !ok {
			return nil, fmt.Errorf("%w: project %q has no recorded container", kerrors.ErrNotFound, name)
		}
		container = recorded
	}
	container, err = filepath.Abs(container)
	if err != nil {
		return nil, fmt.Errorf("resolving container: %w", err)
	}

	recordedRoot, registered := store.Global.ProjectRoot(name)
	archived := store.IsArchived(name)
	if registered && !archived {
		if exists, _ := utils.PathExists(recordedRoot); exists {
			return nil, fmt.Errorf("%w: project %q is present at %s", kerrors.ErrAlreadyActive, name, recordedRoot)
		}
	}

	dest, err := unarchiveDestination(opts.Destination, recordedRoot, registered)
	if err != nil {
		return nil, err
	}
	root := filepath.Join(dest, name)
	replace := false
	if exists, err := utils.PathExists(root); err != nil {
		return nil, err
	} else if exists {
		if !archived || root != recordedRoot {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrPathExists, root)
		}
		replace = true
	}

	Log.Debugf("Extracting %s into %s", container, dest)
	x, err := archive.Extract(container, dest)
	if err != nil {
		return nil, err
	}
	defer x.Cleanup()

	if len(x.Top) != 1 || x.Top[0] != name {
		return nil, fmt.Errorf("%w: %s holds %s, expected a single entry %q",
			kerrors.ErrExtract, container, strings.Join(x.Top, ", "), name)
	}

	staged := x.Dir(name)
	p, experiments, err := readStagedProject(staged, root, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrExtract, container, err)
	}

	present := make(map[string]bool, len(experiments))
	for _, e := range experiments {
		present[e.ID] = true
		if owner, ok := store.Global.ExperimentProject(e.ID); ok && owner != name {
			return nil, fmt.Errorf("%w: experiment %q already belongs to project %q", kerrors.ErrPathExists, e.ID, owner)
		}
	}
	var missing []string
	for _, id := range store.Global.ExperimentsOf(name) {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	if opts.Complete && len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s lacks experiment(s) %s",
			kerrors.ErrIncompleteArchive, container, strings.Join(missing, ", "))
	}

	if replace {
		Log.Debugf("Replacing archived root %s", root)
		if err := os.RemoveAll(root); err != nil {
			return nil, fmt.Errorf("removing %s: %w", root, err)
		}
	}
	if err := os.Rename(staged, root); err != nil {
		return nil, fmt.Errorf("%w: moving %s into place: %v", kerrors.ErrExtract, root, err)
	}
	Log.Infof("Restored project %s to %s", name, root)

	now := store.Now()
	p.ClearArchived()
	p.SetRoot(root)
	p.Stamp(OpUnarchive, now)
	store.AddProject(p)
	store.Global.ClearArchived(name)

	for _, id := range missing {
		Log.Warnf("Experiment %s is not in %s and is dropped", id, container)
		p.RemoveExperiment(id)
		store.DropExperiment(id)
		store.Global.DeleteExperiment(id)
	}

	ids := make([]string, 0, len(experiments))
	for _, e := range experiments {
		e.Stamp(OpUnarchive, now)
		store.CacheExperiment(e)
		store.Global.SetExperiment(e.ID, name)
		ids = append(ids, e.ID)
	}

	store.Global.SetCurrentProject(name)
	if experiment != "" && present[experiment] {
		store.Global.SetCurrentExperiment(experiment)
	}

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}

	record(store, audit.Entry{Operation: OpUnarchive, Project: name, Experiments: ids, Container: container})
	return &UnarchiveResult{Project: name, Root: root, Container: container, Experiments: ids, Missing: missing}, nil
}

// unarchiveTarget picks the project to restore and the experiment that named
// it, if any. An experiment unknown to this machine falls back to the
// container's name.
func unarchiveTarget(store *configs.Store, opts UnarchiveOptions) (string, string, error) {
	if opts.Project != "" {
		name, err := resolver.ResolveProject(store.Global, resolver.Options{Identifier: opts.Project, Match: opts.Match})
		if errors.Is(err, kerrors.ErrNotFound) && !opts.Match {
			return opts.Project, "", nil
		}
		return name, "", err
	}

	if opts.Experiment != "" {
		id, err := resolver.ResolveExperiment(store.Global, resolver.Options{Identifier: opts.Experiment, Match: opts.Match})
		switch {
		case err == nil:
			owner, _ := store.Global.ExperimentProject(id)
			return owner, id, nil
		case errors.Is(err, kerrors.ErrNotFound) && opts.Container != "":
			return containerProject(opts.Container), "", nil
		default:
			return "", "", err
		}
	}

	if opts.Container != "" {
		return containerProject(opts.Container), "", nil
	}

	name, err := resolver.ResolveProject(store.Global, resolver.Options{})
	return name, "", err
}

func containerProject(container string) string {
	base := filepath.Base(container)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func unarchiveDestination(explicit, recordedRoot string, registered bool) (string, error) {
	dest := explicit
	switch {
	case dest != "":
	case registered:
		dest = filepath.Dir(recordedRoot)
	default:
		dest = "."
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("resolving destination: %w", err)
	}
	return abs, nil
}

// readStagedProject loads the documents of an extracted project with paths
// expanded against the root it will be moved to.
func readStagedProject(staged, root, name string) (*configs.ProjectConfig, []*configs.ExperimentConfig, error) {
	doc, err := configs.ReadDocument(paths.ProjectDocPath(staged), root)
	if err != nil {
		return nil, nil, fmt.Errorf("reading project configuration: %w", err)
	}
	p := configs.WrapProjectConfig(name, doc)

	var experiments []*configs.ExperimentConfig
	for _, id := range p.Experiments() {
		doc, err := configs.ReadDocument(paths.ExperimentDocPath(staged, id), root)
		if errors.Is(err, fs.ErrNotExist) {
			Log.Warnf("Experiment %s has no configuration in the container", id)
			p.RemoveExperiment(id)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading configuration of %s: %w", id, err)
		}
		experiments = append(experiments, configs.WrapExperimentConfig(id, doc))
	}
	return p, experiments, nil
}
