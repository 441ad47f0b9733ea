package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/modelorg/internal/archive"
	"github.com/PolarWolf314/modelorg/internal/audit"
	"github.com/PolarWolf314/modelorg/internal/configs"
	"github.com/PolarWolf314/modelorg/internal/document"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
)

// ArchiveOptions configures the archive workflow.
type ArchiveOptions struct {
	// Project to archive. Defaults to the owner of Experiment, then the
	// current project.
	Project    string
	Experiment string
	Match      bool

	// Destination is the directory the container is written to. Defaults
	// to the working directory.
	Destination string

	// Format is a registered container format. Defaults to the configured one.
	Format string

	// Remove deletes the project root once the container is written.
	Remove bool

	// Exclude adds doublestar patterns to the configured excludes.
	Exclude []string
}

// ArchiveResult contains the outcome of an archive operation.
type ArchiveResult struct {
	Project     string
	Container   string
	Format      string
	Experiments []string
	Removed     bool
}

// Archive packs a project root and its configuration into one container at
// <destination>/<project>.<format> and marks the project archived.
//
// The root is deleted only after the container has been written and synced.
// On ErrArchiveWrite the project and its configuration are left untouched.
func Archive(ctx context.Context, store *configs.Store, opts ArchiveOptions) (*ArchiveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := selectProject(store, opts.Project, opts.Experiment, opts.Match)
	if err != nil {
		return nil, err
	}
	if err := requireActive(store, name); err != nil {
		return nil, err
	}
	p, err := store.Project(name)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = store.Settings.Archive.Format
	}
	codec, err := archive.Lookup(format)
	if err != nil {
		return nil, err
	}

	dest := opts.Destination
	if dest == "" {
		dest = "."
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}
	container := filepath.Join(dest, archive.ContainerName(name, format))
	root := p.Root()
	if paths.IsUnder(root, container) {
		return nil, fmt.Errorf("%w: container %s would be inside the project root", kerrors.ErrArchiveWrite, container)
	}

	// Documents are stamped on copies so a failed write changes nothing.
	now := store.Now()
	packed := configs.WrapProjectConfig(name, p.Doc().Clone())
	packed.SetArchived(container, format, now)
	packed.Stamp(OpArchive, now)

	overrides := make(map[string][]byte)
	if err := addOverride(overrides, root, paths.ProjectDocPath(root), packed.Doc()); err != nil {
		return nil, err
	}

	ids := store.Global.ExperimentsOf(name)
	experiments := make([]*configs.ExperimentConfig, 0, len(ids))
	for _, id := range ids {
		e, err := store.Experiment(id)
		if err != nil {
			return nil, fmt.Errorf("loading experiment %q: %w", id, err)
		}
		stamped := configs.WrapExperimentConfig(id, e.Doc().Clone())
		stamped.Stamp(OpArchive, now)
		if err := addOverride(overrides, root, paths.ExperimentDocPath(root, id), stamped.Doc()); err != nil {
			return nil, err
		}
		experiments = append(experiments, stamped)
	}

	exclude := append(append([]string{}, store.Settings.Archive.Exclude...), opts.Exclude...)
	tree, err := archive.Collect(root, name, archive.CollectOptions{Exclude: exclude, Overrides: overrides})
	if err != nil {
		if errors.Is(err, kerrors.ErrInvalidValue) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrArchiveWrite, err)
	}

	Log.Debugf("Writing %d entries to %s", len(tree.Entries), container)
	if err := archive.Write(container, codec, tree); err != nil {
		return nil, err
	}
	Log.Infof("Archived project %s to %s", name, container)

	result := &ArchiveResult{Project: name, Container: container, Format: format, Experiments: ids}
	if opts.Remove {
		Log.Debugf("Deleting project root %s", root)
		if err := os.RemoveAll(root); err != nil {
			return nil, fmt.Errorf("container %s written but deleting %s failed: %w", container, root, err)
		}
		result.Removed = true
	}

	store.CacheProject(packed)
	for _, e := range experiments {
		store.CacheExperiment(e)
	}
	store.Global.SetArchived(name, container)
	if result.Removed {
		store.DropProject(name)
	}

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}

	record(store, audit.Entry{
		Operation:   OpArchive,
		Project:     name,
		Experiments: ids,
		Container:   container,
		Format:      format,
		Removed:     result.Removed,
	})
	return result, nil
}

// addOverride renders doc relative to root and keys it by its slash path in the tree.
func addOverride(overrides map[string][]byte, root, docPath string, doc *document.Map) error {
	rel, err := filepath.Rel(root, docPath)
	if err != nil {
		return err
	}
	data, err := configs.RenderDocument(root, doc)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", rel, err)
	}
	overrides[filepath.ToSlash(rel)] = data
	return nil
}
