package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/modelorg/internal/configs"
	"github.com/PolarWolf314/modelorg/internal/document"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/PolarWolf314/modelorg/internal/resolver"
)

// InfoScope selects which document Info shows.
type InfoScope string

const (
	ScopeExperiment InfoScope = "experiment"
	ScopeProject    InfoScope = "project"
	ScopeGlobal     InfoScope = "global"
	ScopeAll        InfoScope = "all"
)

// InfoScopes lists the valid scopes.
var InfoScopes = []InfoScope{ScopeExperiment, ScopeProject, ScopeGlobal, ScopeAll}

// InfoOptions configures the info workflow.
type InfoOptions struct {
	Scope      InfoScope
	Experiment string
	Project    string
	Match      bool

	// Relative renders paths relative to each document's root.
	Relative bool

	// DocPath returns the file the document is stored in instead of its contents.
	DocPath bool
}

// InfoResult holds either a document or, with DocPath, its location.
type InfoResult struct {
	Scope    InfoScope
	Document *document.Map
	Path     string
}

// Info returns a copy of the selected configuration document.
func Info(ctx context.Context, store *configs.Store, opts InfoOptions) (*InfoResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scope := opts.Scope
	if scope == "" {
		scope = ScopeExperiment
	}

	var result *InfoResult
	var err error
	switch scope {
	case ScopeExperiment:
		result, err = experimentInfo(store, opts)
	case ScopeProject:
		result, err = projectInfo(store, opts)
	case ScopeGlobal:
		result = &InfoResult{Path: paths.GlobalDocPath(store.ConfigDir)}
		if !opts.DocPath {
			result.Document = render(store.GlobalRoot, store.Global.Doc(), opts.Relative)
		}
	case ScopeAll:
		result, err = allInfo(store, opts)
	default:
		return nil, fmt.Errorf("%w: unknown scope %q", kerrors.ErrInvalidValue, scope)
	}
	if err != nil {
		return nil, err
	}
	result.Scope = scope

	// Resolution may have moved the current pointers.
	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}
	return result, nil
}

func experimentInfo(store *configs.Store, opts InfoOptions) (*InfoResult, error) {
	e, err := loadExperiment(store, opts.Experiment, opts.Project, opts.Match)
	if err != nil {
		return nil, err
	}
	p, err := store.Project(e.Project())
	if err != nil {
		return nil, err
	}
	result := &InfoResult{Path: paths.ExperimentDocPath(p.Root(), e.ID)}
	if !opts.DocPath {
		result.Document = render(p.Root(), withID(e), opts.Relative)
	}
	return result, nil
}

func projectInfo(store *configs.Store, opts InfoOptions) (*InfoResult, error) {
	name, err := selectProject(store, opts.Project, opts.Experiment, opts.Match)
	if err != nil {
		return nil, err
	}
	p, err := store.Project(name)
	if err != nil {
		return nil, err
	}
	result := &InfoResult{Path: paths.ProjectDocPath(p.Root())}
	if !opts.DocPath {
		result.Document = render(p.Root(), p.Doc(), opts.Relative)
	}
	return result, nil
}

// allInfo maps every experiment id, optionally of one project, to its
// document. Experiments of archived and removed projects are skipped.
func allInfo(store *configs.Store, opts InfoOptions) (*InfoResult, error) {
	if opts.DocPath {
		return nil, fmt.Errorf("%w: no single document holds all experiments", kerrors.ErrInvalidValue)
	}
	ids := store.Global.Experiments()
	if opts.Project != "" {
		name, err := resolver.ResolveProject(store.Global, resolver.Options{Identifier: opts.Project, Match: opts.Match})
		if err != nil {
			return nil, err
		}
		ids = store.Global.ExperimentsOf(name)
	}

	out := document.NewMap()
	for _, id := range ids {
		e, err := store.Experiment(id)
		if err != nil {
			Log.Debugf("Skipping %s: %v", id, err)
			continue
		}
		p, err := store.Project(e.Project())
		if err != nil {
			continue
		}
		out.Set(id, render(p.Root(), withID(e), opts.Relative))
	}
	return &InfoResult{Document: out}, nil
}

func withID(e *configs.ExperimentConfig) *document.Map {
	doc := e.Doc()
	out := document.NewMap()
	out.Set(configs.KeyID, e.ID)
	for _, k := range doc.Keys() {
		if k == configs.KeyID {
			continue
		}
		v, _ := doc.Get(k)
		out.Set(k, document.CloneValue(v))
	}
	return out
}

func render(root string, doc *document.Map, relative bool) *document.Map {
	if relative {
		return paths.RelativeMap(root, doc)
	}
	return doc.Clone()
}
