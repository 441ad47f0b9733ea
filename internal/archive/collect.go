package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
)

// CollectOptions control which files of a directory end up in a Tree.
type CollectOptions struct {
	// Exclude holds doublestar patterns matched against slash paths
	// relative to the collected directory.
	Exclude []string
	// Overrides replace or add regular files, keyed by relative slash path.
	Overrides map[string][]byte
}

// Collect snapshots dir into a Tree whose top-level entry is name. A dir that
// is itself a symbolic link is followed; links below it are stored as links.
func Collect(dir, name string, opts CollectOptions) (*Tree, error) {
	if err := ValidatePatterns(opts.Exclude); err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	tree := &Tree{Name: name}
	seen := make(map[string]bool)
	err = filepath.WalkDir(resolved, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(resolved, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && !isMeta(rel) && excluded(opts.Exclude, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		e := Entry{
			Name:    memberName(name, rel),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		}
		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := os.Readlink(p)
			if err != nil {
				return err
			}
			e.Link = target
		case info.IsDir():
		case info.Mode().IsRegular():
			if data, ok := opts.Overrides[rel]; ok {
				e.data = data
				e.Size = int64(len(data))
				seen[rel] = true
			} else {
				e.source = p
				e.Size = info.Size()
			}
		default:
			// Sockets, devices and pipes have no portable container form.
			return nil
		}
		tree.Entries = append(tree.Entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting %s: %w", dir, err)
	}

	for _, rel := range sortedKeys(opts.Overrides) {
		if seen[rel] {
			continue
		}
		data := opts.Overrides[rel]
		tree.Entries = append(tree.Entries, Entry{
			Name:    memberName(name, rel),
			Mode:    0644,
			ModTime: time.Now(),
			Size:    int64(len(data)),
			data:    data,
		})
	}
	return tree, nil
}

// ValidatePatterns returns ErrInvalidValue for the first malformed exclude pattern.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: invalid exclude pattern %q", kerrors.ErrInvalidValue, pattern)
		}
	}
	return nil
}

// isMeta reports whether rel is the configuration directory or lies in it.
// Those entries are packed whatever the excludes say.
func isMeta(rel string) bool {
	meta := paths.MetaDirName()
	return rel == meta || strings.HasPrefix(rel, meta+"/")
}

func excluded(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func memberName(top, rel string) string {
	if rel == "." {
		return top
	}
	return path.Join(top, rel)
}
