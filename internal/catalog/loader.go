package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFile loads a standard version from a file. The format is detected by
// extension (.json, .yaml, .yml). The loaded version is normalized and
// validated before being returned.
func LoadFile(path string) (*StandardVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var version StandardVersion
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &version); err != nil {
			return nil, fmt.Errorf("parse JSON catalog: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &version); err != nil {
			return nil, fmt.Errorf("parse YAML catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (supported: .json, .yaml, .yml)", ext)
	}

	version.normalize()
	if err := version.Validate(); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	return &version, nil
}
