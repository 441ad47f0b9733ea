package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/modelorg/internal/document"
)

// relPrefix marks a root-relative path in a persisted document.
const relPrefix = "./"

// escapeMark is prepended to stored strings that would otherwise read as a
// root-relative path, and to strings that already start with it.
const escapeMark = `\`

func needsEscape(s string) bool {
	return s == "." || strings.HasPrefix(s, relPrefix) || strings.HasPrefix(s, escapeMark)
}

// IsUnder reports whether p is root itself or lies beneath it.
func IsUnder(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ToRelative returns a copy of value in which every clean absolute path under
// root is rewritten as "." or "./a/b". Strings that already look like that are
// escaped so ToAbsolute restores them verbatim. Other scalars pass through
// unchanged.
func ToRelative(root string, value any) any {
	if root == "" {
		return document.CloneValue(value)
	}
	return walk(value, func(s string) string {
		if needsEscape(s) {
			return escapeMark + s
		}
		if !filepath.IsAbs(s) || filepath.Clean(s) != s || !IsUnder(root, s) {
			return s
		}
		rel, err := filepath.Rel(root, s)
		if err != nil {
			return s
		}
		if rel == "." {
			return "."
		}
		return relPrefix + filepath.ToSlash(rel)
	})
}

// ToAbsolute is the inverse of ToRelative: strings of the form "." or "./a/b"
// are joined onto root and escaped strings lose their mark. Relative paths
// that would escape root pass through.
func ToAbsolute(root string, value any) any {
	if root == "" {
		return document.CloneValue(value)
	}
	return walk(value, func(s string) string {
		if strings.HasPrefix(s, escapeMark) {
			return s[len(escapeMark):]
		}
		if s == "." {
			return root
		}
		if !strings.HasPrefix(s, relPrefix) {
			return s
		}
		rest := path.Clean(s[len(relPrefix):])
		if rest == ".." || strings.HasPrefix(rest, "../") {
			return s
		}
		return filepath.Join(root, filepath.FromSlash(rest))
	})
}

// RelativeMap is ToRelative for a whole document.
func RelativeMap(root string, m *document.Map) *document.Map {
	out, _ := ToRelative(root, m).(*document.Map)
	return out
}

// AbsoluteMap is ToAbsolute for a whole document.
func AbsoluteMap(root string, m *document.Map) *document.Map {
	out, _ := ToAbsolute(root, m).(*document.Map)
	return out
}

func walk(value any, fn func(string) string) any {
	switch v := value.(type) {
	case *document.Map:
		if v == nil {
			return v
		}
		out := document.NewMap()
		for _, k := range v.Keys() {
			item, _ := v.Get(k)
			out.Set(k, walk(item, fn))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = walk(item, fn)
		}
		return out
	case string:
		return fn(v)
	default:
		return value
	}
}
