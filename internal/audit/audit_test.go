package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_CreatesFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "modelorg")

	Log(configDir, Entry{User: "alice", Operation: "setup", Project: "trigo"})

	_, err := os.Stat(filepath.Join(configDir, "history.jsonl"))
	require.NoError(t, err)
}

func TestLog_AppendsEntries(t *testing.T) {
	configDir := t.TempDir()

	Log(configDir, Entry{User: "alice", Operation: "setup", Project: "trigo"})
	Log(configDir, Entry{User: "alice", Operation: "init", Project: "trigo", Experiment: "sine"})

	data, err := os.ReadFile(filepath.Join(configDir, "history.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var second Entry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "init", second.Operation)
	assert.Equal(t, "sine", second.Experiment)
	assert.NotEmpty(t, second.Timestamp)
}

func TestLog_FillsUser(t *testing.T) {
	configDir := t.TempDir()
	Log(configDir, Entry{Operation: "setup"})

	entries, err := ReadEntries(configDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].User)
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	configDir := t.TempDir()
	Log(configDir, Entry{User: "alice", Host: "lab", Operation: "setup", Project: "trigo"})

	data, err := os.ReadFile(filepath.Join(configDir, "history.jsonl"))
	require.NoError(t, err)

	line := string(data)
	assert.Contains(t, line, `"project":"trigo"`)
	assert.NotContains(t, line, "container")
	assert.NotContains(t, line, "experiments")
}

func TestReadEntries_Missing(t *testing.T) {
	entries, err := ReadEntries(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseEntries_SkipsMalformed(t *testing.T) {
	data := []byte(`{"ts":"2024-03-01T12:00:00.000000Z","user":"alice","op":"setup","project":"trigo"}
not json
{"ts":"2024-03-01T12:01:00.000000Z","user":"alice","op":"archive","project":"trigo","container":"/b/trigo.tar","format":"tar","removed":true}

`)
	entries := ParseEntries(data)
	require.Len(t, entries, 2)
	assert.Equal(t, "archive", entries[1].Operation)
	assert.Equal(t, "/b/trigo.tar", entries[1].Container)
	assert.True(t, entries[1].Removed)
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{Operation: "setup", Project: "trigo"},
		{Operation: "setup", Project: "ocean"},
		{Operation: "init", Project: "trigo"},
	}

	assert.Len(t, Filter(entries, ""), 3)
	got := Filter(entries, "trigo")
	require.Len(t, got, 2)
	assert.Equal(t, "init", got[1].Operation)
}
