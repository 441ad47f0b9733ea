package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/PolarWolf314/modelorg/internal/audit"
	"github.com/PolarWolf314/modelorg/internal/configs"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/utils"
)

// SetupOptions configures the setup workflow.
type SetupOptions struct {
	// Parent is the directory the project root is created in. Defaults to
	// the working directory.
	Parent string

	// Name is the project name. If empty, the next "<prefix><N>" is used.
	Name string

	// Source is an existing directory holding the project's files.
	Source string

	// Link makes the project root a symbolic link to Source instead of a copy.
	Link bool
}

// SetupResult contains the outcome of a setup operation.
type SetupResult struct {
	Project string
	UUID    string
	Root    string
	Linked  bool
	Copied  bool
}

// Setup creates a project root and registers it as the current project.
//
// Returns ErrPathExists if the project is already registered or its root
// already exists and is not empty.
func Setup(ctx context.Context, store *configs.Store, opts SetupOptions) (*SetupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parent := opts.Parent
	if parent == "" {
		parent = "."
	}
	parent, err := filepath.Abs(parent)
	if err != nil {
		return nil, fmt.Errorf("resolving parent directory: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = utils.NextName(store.Settings.Naming.ProjectPrefix, store.Global.Projects())
	}
	if _, registered := store.Global.ProjectRoot(name); registered {
		return nil, fmt.Errorf("%w: project %q is already registered", kerrors.ErrPathExists, name)
	}
	if _, registered := store.Global.ArchivedContainer(name); registered {
		return nil, fmt.Errorf("%w: project %q is registered as archived", kerrors.ErrPathExists, name)
	}

	root := filepath.Join(parent, name)
	Log.Debugf("Setting up project %s at %s", name, root)

	result := &SetupResult{Project: name, Root: root}
	switch {
	case opts.Source != "" && opts.Link:
		if err := linkRoot(root, opts.Source); err != nil {
			return nil, err
		}
		result.Linked = true
	case opts.Source != "":
		if err := copyRoot(root, opts.Source); err != nil {
			return nil, err
		}
		result.Copied = true
	default:
		if err := freshRoot(root); err != nil {
			return nil, err
		}
	}

	result.UUID = uuid.NewString()
	p := configs.NewProjectConfig(name, result.UUID, root)
	p.Stamp(OpSetup, store.Now())
	store.AddProject(p)
	store.Global.SetCurrentProject(name)

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}
	Log.Infof("Project %s set up at %s", name, root)

	record(store, audit.Entry{Operation: OpSetup, Project: name})
	return result, nil
}

func sourceDir(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: source %s: %v", kerrors.ErrNotFound, source, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: source %s is not a directory", kerrors.ErrInvalidValue, source)
	}
	return abs, nil
}

func linkRoot(root, source string) error {
	src, err := sourceDir(source)
	if err != nil {
		return err
	}
	exists, err := utils.PathExists(root)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", kerrors.ErrPathExists, root)
	}
	if err := os.MkdirAll(filepath.Dir(root), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	if err := os.Symlink(src, root); err != nil {
		return fmt.Errorf("linking %s to %s: %w", root, src, err)
	}
	return nil
}

func copyRoot(root, source string) error {
	src, err := sourceDir(source)
	if err != nil {
		return err
	}
	if err := requireEmpty(root); err != nil {
		return err
	}
	if err := utils.CopyTree(src, root); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, root, err)
	}
	return nil
}

func freshRoot(root string) error {
	if err := requireEmpty(root); err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", root, err)
	}
	return nil
}

func requireEmpty(dir string) error {
	empty, err := utils.IsDirEmpty(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrPathExists, dir, err)
	}
	if !empty {
		return fmt.Errorf("%w: %s is not empty", kerrors.ErrPathExists, dir)
	}
	return nil
}
