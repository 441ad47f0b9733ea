package archive

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/paths"
)

// Extraction is a container unpacked into a staging directory.
type Extraction struct {
	// Staging holds the container's top-level entries.
	Staging string
	// Top lists the distinct top-level entry names, sorted.
	Top []string
}

// Dir returns the staged directory of a top-level entry.
func (x *Extraction) Dir(top string) string {
	return filepath.Join(x.Staging, top)
}

// Cleanup removes the staging directory and anything left in it.
func (x *Extraction) Cleanup() error {
	return os.RemoveAll(x.Staging)
}

// Extract unpacks the container at containerPath into a fresh staging
// directory under dest. Entries that would land outside the staging
// directory are rejected.
func Extract(containerPath, dest string) (*Extraction, error) {
	codec, err := ForPath(containerPath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(containerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrExtract, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrExtract, err)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", kerrors.ErrExtract, dest, err)
	}
	staging, err := os.MkdirTemp(dest, ".unarchive-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating staging directory: %v", kerrors.ErrExtract, err)
	}
	x := &Extraction{Staging: staging}

	top := make(map[string]bool)
	err = codec.ReadTree(file, info.Size(), func(e Entry, r io.Reader) error {
		name, err := cleanMemberName(e.Name)
		if err != nil {
			return err
		}
		top[strings.SplitN(name, "/", 2)[0]] = true
		return x.place(name, e, r)
	})
	if err != nil {
		_ = x.Cleanup()
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrExtract, containerPath, err)
	}
	if len(top) == 0 {
		_ = x.Cleanup()
		return nil, fmt.Errorf("%w: %s: container is empty", kerrors.ErrExtract, containerPath)
	}

	for name := range top {
		x.Top = append(x.Top, name)
	}
	sort.Strings(x.Top)
	return x, nil
}

func cleanMemberName(name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if clean == "." || clean == ".." || path.IsAbs(clean) || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid entry name %q", name)
	}
	return clean, nil
}

func (x *Extraction) place(name string, e Entry, r io.Reader) error {
	target := filepath.Join(x.Staging, filepath.FromSlash(name))
	if err := x.checkParent(target); err != nil {
		return err
	}

	switch {
	case e.IsDir():
		if err := os.MkdirAll(target, e.Mode.Perm()|0700); err != nil {
			return fmt.Errorf("creating directory %s: %w", name, err)
		}
		return nil
	case e.IsSymlink():
		return os.Symlink(e.Link, target)
	case r == nil:
		return fmt.Errorf("entry %s has no contents", name)
	}

	// Convert mode safely, defaulting to 0600 for invalid values.
	mode := e.Mode.Perm()
	if mode == 0 {
		mode = 0600
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_EXCL, mode|0200)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	// #nosec G110 -- Containers are produced by archive on this or another machine.
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("writing file %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(target, mode); err != nil {
		return err
	}
	if !e.ModTime.IsZero() {
		_ = os.Chtimes(target, e.ModTime, e.ModTime)
	}
	return nil
}

// checkParent creates the parent of target and makes sure no symbolic link
// placed by an earlier entry redirects it out of the staging directory.
func (x *Extraction) checkParent(target string) error {
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return err
	}
	staging, err := filepath.EvalSymlinks(x.Staging)
	if err != nil {
		return err
	}
	if !paths.IsUnder(staging, resolved) {
		return fmt.Errorf("entry %s escapes the extraction directory", target)
	}
	return nil
}
