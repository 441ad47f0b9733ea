package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/modelorg/internal/audit"
	"github.com/PolarWolf314/modelorg/internal/configs"
	"github.com/PolarWolf314/modelorg/internal/document"
)

// ValueOptions addresses one dotted key in an experiment's configuration.
type ValueOptions struct {
	// Experiment defaults to the current experiment.
	Experiment string
	Project    string
	Match      bool

	// Key is a dotted path such as "fit.params.0".
	Key string

	// Value and DType are used by SetValue. An empty DType infers the type.
	Value string
	DType string
}

// ValueResult contains the experiment and the value at the key.
type ValueResult struct {
	Experiment string
	Key        string
	Value      any
}

// GetValue returns the value at Key. Returns ErrKeyNotFound if it is absent.
func GetValue(ctx context.Context, store *configs.Store, opts ValueOptions) (*ValueResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := loadExperiment(store, opts.Experiment, opts.Project, opts.Match)
	if err != nil {
		return nil, err
	}
	v, err := e.Doc().GetPath(opts.Key)
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", e.ID, err)
	}
	return &ValueResult{Experiment: e.ID, Key: opts.Key, Value: document.CloneValue(v)}, nil
}

// SetValue coerces Value to DType and stores it at Key, creating
// intermediate mappings. Returns ErrInvalidValue if coercion fails.
func SetValue(ctx context.Context, store *configs.Store, opts ValueOptions) (*ValueResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := document.Coerce(opts.Value, opts.DType)
	if err != nil {
		return nil, err
	}
	e, err := loadExperiment(store, opts.Experiment, opts.Project, opts.Match)
	if err != nil {
		return nil, err
	}
	if err := requireActive(store, e.Project()); err != nil {
		return nil, err
	}
	if err := e.Doc().SetPath(opts.Key, v); err != nil {
		return nil, fmt.Errorf("experiment %q: %w", e.ID, err)
	}

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}
	Log.Infof("Set %s of %s to %v", opts.Key, e.ID, v)

	record(store, audit.Entry{Operation: OpSetValue, Project: e.Project(), Experiment: e.ID, Key: opts.Key})
	return &ValueResult{Experiment: e.ID, Key: opts.Key, Value: v}, nil
}

// DelValue removes Key. Returns ErrKeyNotFound if it is absent.
func DelValue(ctx context.Context, store *configs.Store, opts ValueOptions) (*ValueResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := loadExperiment(store, opts.Experiment, opts.Project, opts.Match)
	if err != nil {
		return nil, err
	}
	if err := requireActive(store, e.Project()); err != nil {
		return nil, err
	}
	old, err := e.Doc().GetPath(opts.Key)
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", e.ID, err)
	}
	old = document.CloneValue(old)
	if err := e.Doc().DeletePath(opts.Key); err != nil {
		return nil, fmt.Errorf("experiment %q: %w", e.ID, err)
	}

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}
	Log.Infof("Deleted %s of %s", opts.Key, e.ID)

	record(store, audit.Entry{Operation: OpDelValue, Project: e.Project(), Experiment: e.ID, Key: opts.Key})
	return &ValueResult{Experiment: e.ID, Key: opts.Key, Value: old}, nil
}
