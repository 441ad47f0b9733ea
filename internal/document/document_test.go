package document

import (
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("zeta", 4)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	v, ok := m.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, 4, v)

	assert.True(t, m.Delete("alpha"))
	assert.False(t, m.Delete("alpha"))
	assert.Equal(t, []string{"zeta", "mid"}, m.Keys())
}

func TestCloneIsDeep(t *testing.T) {
	m := NewMap()
	m.Ensure("inner").Set("x", 1)
	m.Set("list", []any{"a", NewMap()})

	c := m.Clone()
	c.Map("inner").Set("x", 2)
	c.Set("extra", true)

	assert.Equal(t, 1, m.Map("inner").values["x"])
	assert.False(t, m.Has("extra"))
}

func TestYAMLRoundTripPreservesOrderAndTypes(t *testing.T) {
	src := []byte(`zz: 1
aa:
  nested: text
  number: "12"
  when: "2026-10-14T09:00:00Z"
ratio: 2.0
flag: true
empty: null
items:
  - one
  - 2
  - k: v
`)
	m, err := Unmarshal(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"zz", "aa", "ratio", "flag", "empty", "items"}, m.Keys())
	assert.Equal(t, []string{"nested", "number", "when"}, m.Map("aa").Keys())

	ratio, _ := m.Get("ratio")
	assert.Equal(t, 2.0, ratio)
	number, _ := m.Map("aa").Get("number")
	assert.Equal(t, "12", number)
	when, _ := m.Map("aa").Get("when")
	assert.Equal(t, "2026-10-14T09:00:00Z", when)

	out, err := Marshal(m)
	require.NoError(t, err)

	again, err := Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestUnmarshalRejectsNonMapping(t *testing.T) {
	_, err := Unmarshal([]byte("- a\n- b\n"))
	assert.Error(t, err)

	_, err = Unmarshal([]byte("a: [unclosed\n"))
	assert.Error(t, err)
}

func TestUnmarshalEmpty(t *testing.T) {
	m, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestDottedSetGetDelete(t *testing.T) {
	m := NewMap()

	v, err := Coerce("12", DTypeInt)
	require.NoError(t, err)
	require.NoError(t, m.SetPath("a.b", v))

	got, err := m.GetPath("a.b")
	require.NoError(t, err)
	assert.Equal(t, 12, got)

	require.NoError(t, m.DeletePath("a.b"))
	_, err = m.GetPath("a.b")
	assert.True(t, errors.Is(err, kerrors.ErrKeyNotFound))

	err = m.DeletePath("a.b")
	assert.True(t, errors.Is(err, kerrors.ErrKeyNotFound))
}

func TestDottedSequences(t *testing.T) {
	m := NewMap()
	m.Set("runs", []any{"first", NewMap()})

	require.NoError(t, m.SetPath("runs.1.seed", 7))
	got, err := m.GetPath("runs.1.seed")
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	require.NoError(t, m.SetPath("runs.2", "third"))
	require.NoError(t, m.DeletePath("runs.0"))
	runs, _ := m.Get("runs")
	require.Len(t, runs, 2)
	assert.Equal(t, "third", runs.([]any)[1])

	_, err = m.GetPath("runs.9")
	assert.True(t, errors.Is(err, kerrors.ErrKeyNotFound))
}

func TestSetPathThroughScalarFails(t *testing.T) {
	m := NewMap()
	m.Set("a", "scalar")
	err := m.SetPath("a.b", 1)
	assert.True(t, errors.Is(err, kerrors.ErrInvalidValue))

	_, err = SplitPath("a..b")
	assert.True(t, errors.Is(err, kerrors.ErrInvalidValue))
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		dtype string
		want  any
	}{
		{name: "infer int", text: "12", want: 12},
		{name: "infer float", text: "1.5", want: 1.5},
		{name: "infer bool", text: "true", want: true},
		{name: "infer string", text: "sine", want: "sine"},
		{name: "nan stays string", text: "nan", want: "nan"},
		{name: "explicit str", text: "12", dtype: DTypeString, want: "12"},
		{name: "explicit float", text: "3", dtype: DTypeFloat, want: 3.0},
		{name: "explicit bool", text: "no", dtype: DTypeBool, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.text, tt.dtype)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceFailures(t *testing.T) {
	for _, dtype := range []string{DTypeInt, DTypeFloat, DTypeBool, "complex"} {
		_, err := Coerce("abc", dtype)
		assert.True(t, errors.Is(err, kerrors.ErrInvalidValue), dtype)
	}
}
