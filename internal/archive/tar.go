package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

type tarCodec struct{}

func init() { register(tarCodec{}) }

func (tarCodec) Format() string { return "tar" }

func (tarCodec) WriteTree(w io.Writer, tree *Tree) error {
	tw := tar.NewWriter(w)
	for _, e := range tree.Entries {
		if err := addTarEntry(tw, e); err != nil {
			return fmt.Errorf("adding %s to archive: %w", e.Name, err)
		}
	}
	return tw.Close()
}

func addTarEntry(tw *tar.Writer, e Entry) error {
	header := &tar.Header{
		Name:    e.Name,
		Mode:    int64(e.Mode.Perm()),
		ModTime: e.ModTime,
	}
	switch {
	case e.IsDir():
		header.Typeflag = tar.TypeDir
		header.Name = strings.TrimSuffix(e.Name, "/") + "/"
	case e.IsSymlink():
		header.Typeflag = tar.TypeSymlink
		header.Linkname = e.Link
	default:
		header.Typeflag = tar.TypeReg
		header.Size = e.Size
	}

	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("writing tar header: %w", err)
	}
	if header.Typeflag != tar.TypeReg {
		return nil
	}

	file, err := e.Open()
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(tw, file); err != nil {
		return fmt.Errorf("writing file contents: %w", err)
	}
	return nil
}

func (tarCodec) ReadTree(r io.ReaderAt, size int64, visit VisitFunc) error {
	tr := tar.NewReader(io.NewSectionReader(r, 0, size))
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}

		e := Entry{
			Name:    strings.TrimSuffix(header.Name, "/"),
			Mode:    fs.FileMode(header.Mode).Perm(),
			ModTime: header.ModTime,
			Size:    header.Size,
		}
		var contents io.Reader
		switch header.Typeflag {
		case tar.TypeDir:
			e.Mode |= fs.ModeDir
		case tar.TypeSymlink:
			e.Mode |= fs.ModeSymlink
			e.Link = header.Linkname
		case tar.TypeReg:
			contents = tr
		default:
			return fmt.Errorf("unsupported tar entry type %q for %s", header.Typeflag, header.Name)
		}
		if err := visit(e, contents); err != nil {
			return err
		}
	}
}
