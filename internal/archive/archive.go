package archive

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
)

// Entry is one member of a container. Name is slash-separated and starts with
// the tree's top-level directory.
type Entry struct {
	Name    string
	Mode    fs.FileMode
	ModTime time.Time
	Size    int64
	// Link is the target of a symbolic link entry.
	Link string

	source string
	data   []byte
}

func (e Entry) IsDir() bool { return e.Mode.IsDir() }

func (e Entry) IsSymlink() bool { return e.Mode&fs.ModeSymlink != 0 }

// Open returns the contents of a regular file entry.
func (e Entry) Open() (io.ReadCloser, error) {
	if e.data != nil {
		return io.NopCloser(bytes.NewReader(e.data)), nil
	}
	return os.Open(e.source)
}

// Tree is a directory snapshot ready to be written by a Codec.
type Tree struct {
	// Name is the single top-level entry of the container.
	Name    string
	Entries []Entry
}

// VisitFunc is called for every entry read from a container. r yields the
// contents of regular files and is nil otherwise.
type VisitFunc func(e Entry, r io.Reader) error

// Codec reads and writes one container format.
type Codec interface {
	Format() string
	WriteTree(w io.Writer, tree *Tree) error
	ReadTree(r io.ReaderAt, size int64, visit VisitFunc) error
}

var codecs = map[string]Codec{}

func register(c Codec) {
	codecs[c.Format()] = c
}

// Lookup returns the codec named format.
func Lookup(format string) (Codec, error) {
	c, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: unknown archive format %q (supported: %s)",
			kerrors.ErrInvalidValue, format, strings.Join(Formats(), ", "))
	}
	return c, nil
}

// ForPath returns the codec matching the extension of a container path.
func ForPath(path string) (Codec, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	c, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s: unrecognized container extension", kerrors.ErrExtract, path)
	}
	return c, nil
}

// Formats lists the registered format names.
func Formats() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContainerName is the file name a project is archived into.
func ContainerName(project, format string) string {
	return project + "." + format
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
