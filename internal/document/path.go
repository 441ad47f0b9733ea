package document

import (
	"fmt"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
)

// SplitPath splits a dotted key path such as "a.b.0.c".
func SplitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty key path", kerrors.ErrInvalidValue)
	}
	segs := strings.Split(path, ".")
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("%w: malformed key path %q", kerrors.ErrInvalidValue, path)
		}
	}
	return segs, nil
}

// GetPath returns the value addressed by a dotted path. Numeric segments index sequences.
func (m *Map) GetPath(path string) (any, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	var cur any = m
	for _, seg := range segs {
		next, ok := child(cur, seg)
		if !ok {
			return nil, fmt.Errorf("%w: %q", kerrors.ErrKeyNotFound, path)
		}
		cur = next
	}
	return cur, nil
}

// SetPath stores value at a dotted path, creating intermediate mappings as needed.
func (m *Map) SetPath(path string, value any) error {
	segs, err := SplitPath(path)
	if err != nil {
		return err
	}
	_, err = setIn(m, segs, value, path)
	return err
}

// DeletePath removes the value at a dotted path.
func (m *Map) DeletePath(path string) error {
	segs, err := SplitPath(path)
	if err != nil {
		return err
	}
	_, err = deleteIn(m, segs, path)
	return err
}

func child(cur any, seg string) (any, bool) {
	switch c := cur.(type) {
	case *Map:
		return c.Get(seg)
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	}
	return nil, false
}

func setIn(cur any, segs []string, value any, full string) (any, error) {
	seg, rest := segs[0], segs[1:]
	switch c := cur.(type) {
	case *Map:
		if len(rest) == 0 {
			c.Set(seg, value)
			return c, nil
		}
		next, ok := c.Get(seg)
		if !ok || next == nil {
			next = NewMap()
		}
		updated, err := setIn(next, rest, value, full)
		if err != nil {
			return nil, err
		}
		c.Set(seg, updated)
		return c, nil
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx > len(c) {
			return nil, fmt.Errorf("%w: %q (index %s out of range)", kerrors.ErrKeyNotFound, full, seg)
		}
		if len(rest) == 0 {
			if idx == len(c) {
				return append(c, value), nil
			}
			c[idx] = value
			return c, nil
		}
		if idx == len(c) {
			return nil, fmt.Errorf("%w: %q (index %s out of range)", kerrors.ErrKeyNotFound, full, seg)
		}
		updated, err := setIn(c[idx], rest, value, full)
		if err != nil {
			return nil, err
		}
		c[idx] = updated
		return c, nil
	default:
		return nil, fmt.Errorf("%w: cannot set %q, %q holds a scalar", kerrors.ErrInvalidValue, full, seg)
	}
}

func deleteIn(cur any, segs []string, full string) (any, error) {
	seg, rest := segs[0], segs[1:]
	notFound := fmt.Errorf("%w: %q", kerrors.ErrKeyNotFound, full)
	switch c := cur.(type) {
	case *Map:
		if len(rest) == 0 {
			if !c.Delete(seg) {
				return nil, notFound
			}
			return c, nil
		}
		next, ok := c.Get(seg)
		if !ok {
			return nil, notFound
		}
		updated, err := deleteIn(next, rest, full)
		if err != nil {
			return nil, err
		}
		c.Set(seg, updated)
		return c, nil
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(c) {
			return nil, notFound
		}
		if len(rest) == 0 {
			return append(c[:idx:idx], c[idx+1:]...), nil
		}
		updated, err := deleteIn(c[idx], rest, full)
		if err != nil {
			return nil, err
		}
		c[idx] = updated
		return c, nil
	default:
		return nil, notFound
	}
}
