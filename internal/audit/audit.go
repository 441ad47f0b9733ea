package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/PolarWolf314/modelorg/internal/utils"
)

// Entry represents a single history entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Username of whoever ran the command.
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Project     string   `json:"project,omitempty"`
	Experiment  string   `json:"experiment,omitempty"`
	Experiments []string `json:"experiments,omitempty"` // For archive/unarchive and remove --all.
	Container   string   `json:"container,omitempty"`   // For archive/unarchive.
	Format      string   `json:"format,omitempty"`      // For archive.
	Key         string   `json:"key,omitempty"`         // For set-value/del-value.
	Removed     bool     `json:"removed,omitempty"`     // For archive with root removal.
}

// Log appends an entry to the history in configDir.
// Failures are ignored: a command never fails because its history could not be written.
func Log(configDir string, entry Entry) {
	if configDir == "" {
		return
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" || entry.Host == "" {
		id := utils.CurrentIdentity()
		if entry.User == "" {
			entry.User = id.User
		}
		if entry.Host == "" {
			entry.Host = id.Host
		}
	}

	logPath := paths.HistoryPath(configDir)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the history in configDir.
// Returns an empty slice if the history doesn't exist.
func ReadEntries(configDir string) ([]Entry, error) {
	data, err := os.ReadFile(paths.HistoryPath(configDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines are skipped.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// Filter returns the entries for project, or every entry when project is empty.
func Filter(entries []Entry, project string) []Entry {
	if project == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if e.Project == project {
			out = append(out, e)
		}
	}
	return out
}
