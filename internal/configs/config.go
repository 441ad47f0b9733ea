package configs

import (
	"sort"
	"time"

	"github.com/PolarWolf314/modelorg/internal/document"
)

// Global document keys.
const (
	keyProjects          = "projects"
	keyExperiments       = "experiments"
	keyArchived          = "archived"
	keyCurrentProject    = "current_project"
	keyCurrentExperiment = "current_experiment"
)

// Project and experiment document keys.
const (
	KeyName        = "name"
	KeyUUID        = "uuid"
	KeyRoot        = "root"
	KeyTimestamps  = "timestamps"
	KeyExperiments = "experiments"
	KeyArchived    = "archived"
	KeyID          = "id"
	KeyProject     = "project"
	KeyExpDir      = "expdir"
	KeyDescription = "description"
)

// TimestampFormat is how operation timestamps are written.
const TimestampFormat = time.RFC3339

// GlobalConfig is the process-wide registry of projects and experiments,
// including the current project and experiment pointers.
type GlobalConfig struct {
	doc *document.Map
}

// NewGlobalConfig returns an empty registry.
func NewGlobalConfig() *GlobalConfig {
	return newGlobalConfig(document.NewMap())
}

func newGlobalConfig(doc *document.Map) *GlobalConfig {
	for _, k := range []string{keyProjects, keyExperiments, keyArchived} {
		doc.Ensure(k)
	}
	for _, k := range []string{keyCurrentProject, keyCurrentExperiment} {
		if v, ok := doc.Get(k); !ok || v == nil {
			doc.Set(k, "")
		}
	}
	return &GlobalConfig{doc: doc}
}

// Doc returns the underlying document.
func (g *GlobalConfig) Doc() *document.Map { return g.doc }

// Projects returns registered project names in registration order.
func (g *GlobalConfig) Projects() []string {
	return g.doc.Map(keyProjects).Keys()
}

// ProjectRoot returns the root directory recorded for project.
func (g *GlobalConfig) ProjectRoot(project string) (string, bool) {
	v, ok := g.doc.Map(keyProjects).Get(project)
	if !ok {
		return "", false
	}
	root, _ := v.(string)
	return root, true
}

func (g *GlobalConfig) SetProject(project, root string) {
	g.doc.Ensure(keyProjects).Set(project, root)
}

// DeleteProject forgets project, its archive record and the current pointer if it named it.
func (g *GlobalConfig) DeleteProject(project string) {
	g.doc.Map(keyProjects).Delete(project)
	g.doc.Map(keyArchived).Delete(project)
	if g.CurrentProject() == project {
		g.SetCurrentProject("")
	}
}

// Experiments returns every registered experiment id in registration order.
func (g *GlobalConfig) Experiments() []string {
	return g.doc.Map(keyExperiments).Keys()
}

// ExperimentProject returns the project owning id.
func (g *GlobalConfig) ExperimentProject(id string) (string, bool) {
	v, ok := g.doc.Map(keyExperiments).Get(id)
	if !ok {
		return "", false
	}
	project, _ := v.(string)
	return project, true
}

// ExperimentsOf returns the ids owned by project in registration order.
func (g *GlobalConfig) ExperimentsOf(project string) []string {
	var ids []string
	for _, id := range g.Experiments() {
		if owner, _ := g.ExperimentProject(id); owner == project {
			ids = append(ids, id)
		}
	}
	return ids
}

func (g *GlobalConfig) SetExperiment(id, project string) {
	g.doc.Ensure(keyExperiments).Set(id, project)
}

func (g *GlobalConfig) DeleteExperiment(id string) {
	g.doc.Map(keyExperiments).Delete(id)
	if g.CurrentExperiment() == id {
		g.SetCurrentExperiment("")
	}
}

// ArchivedContainer returns the container file project was archived into.
func (g *GlobalConfig) ArchivedContainer(project string) (string, bool) {
	v, ok := g.doc.Map(keyArchived).Get(project)
	if !ok {
		return "", false
	}
	container, _ := v.(string)
	return container, true
}

// ArchivedProjects returns the names of archived projects, sorted.
func (g *GlobalConfig) ArchivedProjects() []string {
	names := g.doc.Map(keyArchived).Keys()
	sort.Strings(names)
	return names
}

func (g *GlobalConfig) SetArchived(project, container string) {
	g.doc.Ensure(keyArchived).Set(project, container)
}

func (g *GlobalConfig) ClearArchived(project string) {
	g.doc.Map(keyArchived).Delete(project)
}

func (g *GlobalConfig) CurrentProject() string { return g.doc.String(keyCurrentProject) }

func (g *GlobalConfig) SetCurrentProject(project string) {
	g.doc.Set(keyCurrentProject, project)
}

func (g *GlobalConfig) CurrentExperiment() string { return g.doc.String(keyCurrentExperiment) }

// SetCurrentExperiment also makes the owning project current.
func (g *GlobalConfig) SetCurrentExperiment(id string) {
	g.doc.Set(keyCurrentExperiment, id)
	if project, ok := g.ExperimentProject(id); ok {
		g.SetCurrentProject(project)
	}
}

// ProjectConfig is the document stored at <root>/.project/.project.yml.
type ProjectConfig struct {
	Name string
	doc  *document.Map
}

// NewProjectConfig returns the document for a freshly set up project.
func NewProjectConfig(name, uuid, root string) *ProjectConfig {
	doc := document.NewMap()
	doc.Set(KeyName, name)
	doc.Set(KeyUUID, uuid)
	doc.Set(KeyRoot, root)
	doc.Set(KeyTimestamps, document.NewMap())
	doc.Set(KeyExperiments, document.NewMap())
	return &ProjectConfig{Name: name, doc: doc}
}

// WrapProjectConfig adopts a loaded document.
func WrapProjectConfig(name string, doc *document.Map) *ProjectConfig {
	if doc == nil {
		doc = document.NewMap()
	}
	return &ProjectConfig{Name: name, doc: doc}
}

func (p *ProjectConfig) Doc() *document.Map { return p.doc }

func (p *ProjectConfig) Root() string { return p.doc.String(KeyRoot) }

func (p *ProjectConfig) SetRoot(root string) { p.doc.Set(KeyRoot, root) }

// Experiments returns the ids summarized in the project document.
func (p *ProjectConfig) Experiments() []string {
	return p.doc.Map(KeyExperiments).Keys()
}

func (p *ProjectConfig) AddExperiment(id, expdir string) {
	summary := document.NewMap()
	summary.Set(KeyExpDir, expdir)
	p.doc.Ensure(KeyExperiments).Set(id, summary)
}

func (p *ProjectConfig) RemoveExperiment(id string) {
	p.doc.Map(KeyExperiments).Delete(id)
}

func (p *ProjectConfig) Archived() bool { return p.doc.Map(KeyArchived) != nil }

// SetArchived records where and when the project was packed.
func (p *ProjectConfig) SetArchived(container, format string, at time.Time) {
	meta := document.NewMap()
	meta.Set("time", at.Format(TimestampFormat))
	meta.Set("container", container)
	meta.Set("format", format)
	p.doc.Set(KeyArchived, meta)
}

func (p *ProjectConfig) ClearArchived() { p.doc.Delete(KeyArchived) }

func (p *ProjectConfig) Stamp(op string, at time.Time) {
	p.doc.Ensure(KeyTimestamps).Set(op, at.Format(TimestampFormat))
}

// ExperimentConfig is the document stored at <root>/.project/<id>.yml.
type ExperimentConfig struct {
	ID  string
	doc *document.Map
}

// NewExperimentConfig returns the document for a freshly initialized experiment.
func NewExperimentConfig(id, project, expdir, description string) *ExperimentConfig {
	doc := document.NewMap()
	doc.Set(KeyID, id)
	doc.Set(KeyProject, project)
	doc.Set(KeyExpDir, expdir)
	if description != "" {
		doc.Set(KeyDescription, description)
	}
	doc.Set(KeyTimestamps, document.NewMap())
	return &ExperimentConfig{ID: id, doc: doc}
}

// WrapExperimentConfig adopts a loaded document.
func WrapExperimentConfig(id string, doc *document.Map) *ExperimentConfig {
	if doc == nil {
		doc = document.NewMap()
	}
	return &ExperimentConfig{ID: id, doc: doc}
}

func (e *ExperimentConfig) Doc() *document.Map { return e.doc }

func (e *ExperimentConfig) Project() string { return e.doc.String(KeyProject) }

func (e *ExperimentConfig) ExpDir() string { return e.doc.String(KeyExpDir) }

func (e *ExperimentConfig) Stamp(op string, at time.Time) {
	e.doc.Ensure(KeyTimestamps).Set(op, at.Format(TimestampFormat))
}

// Timestamps returns the op -> time mapping, or nil.
func (e *ExperimentConfig) Timestamps() *document.Map { return e.doc.Map(KeyTimestamps) }
