package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/PolarWolf314/modelorg/internal/document"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
)

// Store owns the in-memory configuration for one invocation. Globals are read
// by Load; project and experiment documents are read on first use and cached
// until Save writes every loaded document back.
type Store struct {
	ConfigDir  string
	GlobalRoot string
	Settings   *Settings
	Now        func() time.Time

	Global *GlobalConfig

	projects    map[string]*ProjectConfig
	experiments map[string]*ExperimentConfig
}

// Open returns a store rooted at the user's home directory with settings read
// from configDir.
func Open(configDir string) (*Store, error) {
	home, err := paths.GlobalRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}
	s := New(configDir, home)
	settings, err := LoadSettings(configDir)
	if err != nil {
		return nil, err
	}
	s.Settings = settings
	return s, nil
}

// New returns a store with default settings. globalRoot is the directory
// global paths are written relative to.
func New(configDir, globalRoot string) *Store {
	return &Store{
		ConfigDir:   configDir,
		GlobalRoot:  globalRoot,
		Settings:    DefaultSettings(),
		Now:         time.Now,
		Global:      NewGlobalConfig(),
		projects:    make(map[string]*ProjectConfig),
		experiments: make(map[string]*ExperimentConfig),
	}
}

// Load reads the global document. A missing document is an empty registry.
func (s *Store) Load() error {
	doc, err := ReadDocument(paths.GlobalDocPath(s.ConfigDir), s.GlobalRoot)
	if errors.Is(err, fs.ErrNotExist) {
		s.Global = NewGlobalConfig()
		return nil
	}
	if err != nil {
		return err
	}
	s.Global = newGlobalConfig(doc)
	return nil
}

// Project returns the configuration of a registered project.
func (s *Store) Project(name string) (*ProjectConfig, error) {
	if p, ok := s.projects[name]; ok {
		return p, nil
	}
	root, ok := s.Global.ProjectRoot(name)
	if !ok {
		return nil, fmt.Errorf("%w: project %q", kerrors.ErrNotFound, name)
	}
	doc, err := ReadDocument(paths.ProjectDocPath(root), root)
	if errors.Is(err, fs.ErrNotExist) {
		if container, archived := s.Global.ArchivedContainer(name); archived {
			return nil, fmt.Errorf("%w: project %q is archived in %s", kerrors.ErrAlreadyArchived, name, container)
		}
		return nil, fmt.Errorf("%w: project %q has no configuration at %s", kerrors.ErrNotFound, name, root)
	}
	if err != nil {
		return nil, err
	}
	p := WrapProjectConfig(name, doc)
	s.projects[name] = p
	return p, nil
}

// Experiment returns the configuration of a registered experiment.
func (s *Store) Experiment(id string) (*ExperimentConfig, error) {
	if e, ok := s.experiments[id]; ok {
		return e, nil
	}
	owner, ok := s.Global.ExperimentProject(id)
	if !ok {
		return nil, fmt.Errorf("%w: experiment %q", kerrors.ErrNotFound, id)
	}
	p, err := s.Project(owner)
	if err != nil {
		return nil, err
	}
	doc, err := ReadDocument(paths.ExperimentDocPath(p.Root(), id), p.Root())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: experiment %q has no configuration in project %q", kerrors.ErrNotFound, id, owner)
	}
	if err != nil {
		return nil, err
	}
	e := WrapExperimentConfig(id, doc)
	s.experiments[id] = e
	return e, nil
}

// AddProject registers p and caches its document.
func (s *Store) AddProject(p *ProjectConfig) {
	s.projects[p.Name] = p
	s.Global.SetProject(p.Name, p.Root())
}

// AddExperiment registers e under p and records it in the project summary.
func (s *Store) AddExperiment(p *ProjectConfig, e *ExperimentConfig) {
	s.experiments[e.ID] = e
	s.Global.SetExperiment(e.ID, p.Name)
	p.AddExperiment(e.ID, e.ExpDir())
}

// CacheProject replaces the cached document for p without touching globals.
func (s *Store) CacheProject(p *ProjectConfig) {
	s.projects[p.Name] = p
}

// CacheExperiment replaces the cached document for e without touching globals.
func (s *Store) CacheExperiment(e *ExperimentConfig) {
	s.experiments[e.ID] = e
}

// DropProject evicts project and its experiments from the cache so Save no
// longer writes them. The global index is left alone.
func (s *Store) DropProject(name string) {
	delete(s.projects, name)
	for id, e := range s.experiments {
		if e.Project() == name {
			delete(s.experiments, id)
		}
	}
}

// DropExperiment evicts id from the cache.
func (s *Store) DropExperiment(id string) {
	delete(s.experiments, id)
}

func (s *Store) IsArchived(project string) bool {
	_, ok := s.Global.ArchivedContainer(project)
	return ok
}

// ExperimentArchived reports whether the project owning id is archived.
func (s *Store) ExperimentArchived(id string) bool {
	owner, ok := s.Global.ExperimentProject(id)
	return ok && s.IsArchived(owner)
}

// Save writes every cached project and experiment document, then the global
// document, so the registry never refers to documents that were not written.
func (s *Store) Save() error {
	for _, name := range sortedKeys(s.projects) {
		p := s.projects[name]
		data, err := RenderDocument(p.Root(), p.Doc())
		if err != nil {
			return err
		}
		if err := writeFileAtomic(paths.ProjectDocPath(p.Root()), data, 0644); err != nil {
			return fmt.Errorf("failed to write configuration of project %q: %w", name, err)
		}
	}

	for _, id := range sortedKeys(s.experiments) {
		e := s.experiments[id]
		p, ok := s.projects[e.Project()]
		if !ok {
			continue
		}
		data, err := RenderDocument(p.Root(), e.Doc())
		if err != nil {
			return err
		}
		if err := writeFileAtomic(paths.ExperimentDocPath(p.Root(), id), data, 0644); err != nil {
			return fmt.Errorf("failed to write configuration of experiment %q: %w", id, err)
		}
	}

	data, err := RenderDocument(s.GlobalRoot, s.Global.Doc())
	if err != nil {
		return err
	}
	if err := writeFileAtomic(paths.GlobalDocPath(s.ConfigDir), data, 0600); err != nil {
		return fmt.Errorf("failed to write global configuration: %w", err)
	}
	return nil
}

// ReadDocument reads the document at path and expands root-relative paths against root.
func ReadDocument(path, root string) (*document.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := document.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrConfigCorrupt, path, err)
	}
	return paths.AbsoluteMap(root, doc), nil
}

// RenderDocument encodes doc with paths under root written relative to it.
func RenderDocument(root string, doc *document.Map) ([]byte, error) {
	return document.Marshal(paths.RelativeMap(root, doc))
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
