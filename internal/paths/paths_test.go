package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/PolarWolf314/modelorg/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRelativeRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "trigo")
	paths := []string{
		root,
		filepath.Join(root, "experiments", "sine"),
		filepath.Join(root, "experiments", "sine", "input.dat"),
	}
	for _, p := range paths {
		rel := ToRelative(root, p)
		assert.NotEqual(t, p, rel)
		assert.Equal(t, p, ToAbsolute(root, rel))
	}
}

func TestToRelativeEncoding(t *testing.T) {
	root := filepath.Join(t.TempDir(), "trigo")
	assert.Equal(t, ".", ToRelative(root, root))
	assert.Equal(t, "./experiments/sine", ToRelative(root, filepath.Join(root, "experiments", "sine")))
}

func TestToRelativePassesThrough(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "trigo")
	tests := []struct {
		name  string
		value any
	}{
		{name: "outside root", value: filepath.Join(base, "other", "file")},
		{name: "sibling with shared prefix", value: root + "2"},
		{name: "plain text", value: "sine wave"},
		{name: "unclean path", value: root + "/a/../b"},
		{name: "number", value: 12},
		{name: "bool", value: true},
		{name: "nil", value: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, ToRelative(root, tt.value))
		})
	}
}

func TestCodecRoundTripsRelativeLookingStrings(t *testing.T) {
	root := filepath.Join(t.TempDir(), "trigo")
	values := []string{
		".",
		"./x",
		"./data/in.txt",
		"./../etc",
		"../x",
		"x/./y",
		`\x`,
		`\./x`,
		"",
	}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			stored := ToRelative(root, v)
			assert.Equal(t, v, ToAbsolute(root, stored))
		})
	}
}

func TestToRelativeEscapesStoredStrings(t *testing.T) {
	root := filepath.Join(t.TempDir(), "trigo")
	assert.Equal(t, `\.`, ToRelative(root, "."))
	assert.Equal(t, `\./data`, ToRelative(root, "./data"))
	assert.Equal(t, "../x", ToRelative(root, "../x"))

	// A path under root and the string "." stay distinct once stored.
	doc := document.NewMap()
	doc.Set("root", root)
	doc.Set("sep", ".")
	rel := RelativeMap(root, doc)
	assert.Equal(t, ".", rel.String("root"))
	assert.Equal(t, `\.`, rel.String("sep"))
	assert.Equal(t, doc, AbsoluteMap(root, rel))
}

func TestToAbsoluteRejectsEscapes(t *testing.T) {
	root := filepath.Join(t.TempDir(), "trigo")
	assert.Equal(t, "./../etc/passwd", ToAbsolute(root, "./../etc/passwd"))
	assert.Equal(t, "relative/not/marked", ToAbsolute(root, "relative/not/marked"))
}

func TestCodecWalksNestedStructures(t *testing.T) {
	root := filepath.Join(t.TempDir(), "trigo")
	outside := filepath.Join(t.TempDir(), "shared.nc")

	doc := document.NewMap()
	doc.Set("expdir", filepath.Join(root, "experiments", "sine"))
	inner := doc.Ensure("files")
	inner.Set("input", filepath.Join(root, "experiments", "sine", "input.dat"))
	inner.Set("forcing", outside)
	doc.Set("list", []any{filepath.Join(root, "a"), 3, "label"})

	rel := RelativeMap(root, doc)
	assert.Equal(t, "./experiments/sine", rel.String("expdir"))
	assert.Equal(t, outside, rel.Map("files").String("forcing"))
	list, _ := rel.Get("list")
	assert.Equal(t, []any{"./a", 3, "label"}, list)

	// The input document is not modified.
	assert.Equal(t, filepath.Join(root, "experiments", "sine"), doc.String("expdir"))

	assert.Equal(t, doc, AbsoluteMap(root, rel))
}

func TestIsUnder(t *testing.T) {
	assert.True(t, IsUnder("/a/b", "/a/b"))
	assert.True(t, IsUnder("/a/b", "/a/b/c"))
	assert.False(t, IsUnder("/a/b", "/a/bc"))
	assert.False(t, IsUnder("/a/b", "/a"))
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		envVal  string
		wantSub string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", wantSub: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", wantSub: "/env/config"},
		{name: "platform default when both empty", wantSub: AppName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}
}

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/modelorg", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "modelorg"), got)
	})
}

func TestLayout(t *testing.T) {
	assert.Equal(t, filepath.Join("/p", ".project", ".project.yml"), ProjectDocPath("/p"))
	assert.Equal(t, filepath.Join("/p", ".project", "sine.yml"), ExperimentDocPath("/p", "sine"))
	assert.Equal(t, filepath.Join("/p", "experiments", "sine"), ExperimentDir("/p", "sine"))
	assert.Equal(t, filepath.Join("/c", "globals.yml"), GlobalDocPath("/c"))
}
