package configs

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// EncodeTOML renders a struct as TOML.
func EncodeTOML(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveTOML saves a struct to a TOML file.
func SaveTOML(filePath string, data interface{}) error {
	out, err := EncodeTOML(data)
	if err != nil {
		return err
	}
	return writeFileAtomic(filePath, out, 0600)
}

// LoadTOML loads a TOML file into a struct.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}
