package paths

import "path/filepath"

// DocExt is the extension of every persisted document.
const DocExt = ".yml"

const (
	metaDirName     = ".project"
	projectDocName  = ".project" + DocExt
	globalDocName   = "globals" + DocExt
	experimentsName = "experiments"
	historyName     = "history.jsonl"
	settingsName    = "settings.toml"
)

func GlobalDocPath(configDir string) string {
	return filepath.Join(configDir, globalDocName)
}

func SettingsPath(configDir string) string {
	return filepath.Join(configDir, settingsName)
}

func HistoryPath(configDir string) string {
	return filepath.Join(configDir, historyName)
}

// MetaDir is the directory holding a project's documents.
func MetaDir(root string) string {
	return filepath.Join(root, metaDirName)
}

// MetaDirName is MetaDir relative to the project root.
func MetaDirName() string {
	return metaDirName
}

func ProjectDocPath(root string) string {
	return filepath.Join(root, metaDirName, projectDocName)
}

func ExperimentDocPath(root, id string) string {
	return filepath.Join(root, metaDirName, id+DocExt)
}

func ExperimentDir(root, id string) string {
	return filepath.Join(root, experimentsName, id)
}
