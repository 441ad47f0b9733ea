package resolver

import (
	"fmt"
	"regexp"

	"github.com/PolarWolf314/modelorg/internal/configs"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
)

// Options select an experiment or project.
type Options struct {
	// Identifier is an exact name, or a pattern when Match is set. Empty
	// means the current pointer.
	Identifier string
	Match      bool
	// Project restricts experiment candidates to one project.
	Project string
}

// ResolveExperiment returns exactly one experiment id and makes it current.
func ResolveExperiment(g *configs.GlobalConfig, opts Options) (string, error) {
	candidates := g.Experiments()
	if opts.Project != "" {
		candidates = g.ExperimentsOf(opts.Project)
	}

	id, err := resolve("experiment", opts, g.CurrentExperiment(), candidates)
	if err != nil {
		return "", err
	}
	g.SetCurrentExperiment(id)
	return id, nil
}

// ResolveProject returns exactly one project name and makes it current.
// Archived projects are candidates too.
func ResolveProject(g *configs.GlobalConfig, opts Options) (string, error) {
	candidates := g.Projects()
	for _, name := range g.ArchivedProjects() {
		if _, registered := g.ProjectRoot(name); !registered {
			candidates = append(candidates, name)
		}
	}

	name, err := resolve("project", opts, g.CurrentProject(), candidates)
	if err != nil {
		return "", err
	}
	g.SetCurrentProject(name)
	return name, nil
}

func resolve(kind string, opts Options, current string, candidates []string) (string, error) {
	if opts.Identifier == "" {
		if current == "" {
			return "", fmt.Errorf("%w: no current %s", kerrors.ErrNotFound, kind)
		}
		if !contains(candidates, current) {
			return "", fmt.Errorf("%w: current %s %q", kerrors.ErrNotFound, kind, current)
		}
		return current, nil
	}

	if !opts.Match {
		if !contains(candidates, opts.Identifier) {
			return "", fmt.Errorf("%w: %s %q", kerrors.ErrNotFound, kind, opts.Identifier)
		}
		return opts.Identifier, nil
	}

	matches, err := Match(opts.Identifier, candidates)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: no %s matches %q", kerrors.ErrNotFound, kind, opts.Identifier)
	case 1:
		return matches[0], nil
	default:
		return "", &kerrors.AmbiguousMatchError{Identifier: opts.Identifier, Matches: matches}
	}
}

// Match returns the candidates the whole of pattern matches, in order.
func Match(pattern string, candidates []string) ([]string, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", kerrors.ErrInvalidValue, pattern, err)
	}
	var matches []string
	for _, c := range candidates {
		if re.MatchString(c) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
