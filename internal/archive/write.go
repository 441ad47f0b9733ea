package archive

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
)

// Write encodes tree with codec into path. The container is written to a
// temporary file next to path, flushed to disk and renamed into place, so
// path either holds a complete container or is left as it was.
func Write(path string, codec Codec, tree *Tree) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrArchiveWrite, path, err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", kerrors.ErrArchiveWrite, path, err)
	}

	if err := codec.WriteTree(tmp, tree); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", kerrors.ErrArchiveWrite, path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", kerrors.ErrArchiveWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", kerrors.ErrArchiveWrite, path, err)
	}
	return nil
}
