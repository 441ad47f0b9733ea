package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

type zipCodec struct{}

func init() { register(zipCodec{}) }

func (zipCodec) Format() string { return "zip" }

func (zipCodec) WriteTree(w io.Writer, tree *Tree) error {
	zw := zip.NewWriter(w)
	for _, e := range tree.Entries {
		if err := addZipEntry(zw, e); err != nil {
			return fmt.Errorf("adding %s to archive: %w", e.Name, err)
		}
	}
	return zw.Close()
}

func addZipEntry(zw *zip.Writer, e Entry) error {
	header := &zip.FileHeader{
		Name:     e.Name,
		Method:   zip.Deflate,
		Modified: e.ModTime,
	}
	header.SetMode(e.Mode)
	if e.IsDir() {
		header.Name = strings.TrimSuffix(e.Name, "/") + "/"
		header.Method = zip.Store
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("writing zip header: %w", err)
	}
	switch {
	case e.IsDir():
		return nil
	case e.IsSymlink():
		_, err := io.WriteString(w, e.Link)
		return err
	}

	file, err := e.Open()
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("writing file contents: %w", err)
	}
	return nil
}

func (zipCodec) ReadTree(r io.ReaderAt, size int64, visit VisitFunc) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	for _, f := range zr.File {
		if err := visitZipFile(f, visit); err != nil {
			return err
		}
	}
	return nil
}

func visitZipFile(f *zip.File, visit VisitFunc) error {
	mode := f.Mode()
	e := Entry{
		Name:    strings.TrimSuffix(f.Name, "/"),
		Mode:    mode,
		ModTime: f.Modified,
		Size:    int64(f.UncompressedSize64),
	}
	if mode.IsDir() || strings.HasSuffix(f.Name, "/") {
		e.Mode |= fs.ModeDir
		return visit(e, nil)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	if e.IsSymlink() {
		target, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("reading link %s: %w", f.Name, err)
		}
		e.Link = string(target)
		return visit(e, nil)
	}
	return visit(e, rc)
}
