package conversation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDefinition reads, parses and validates a conversation definition from
// path. The format is chosen by extension: .json, or .yaml/.yml. Any
// integrity error is fatal; the process must not start with a broken graph.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	var def *Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		def, err = ParseJSON(data)
	case ".yaml", ".yml":
		def, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load definition %s: %w", path, err)
	}

	slog.Info("LoadDefinition loaded conversation definition",
		"path", path, "version", def.Version, "states", def.StateCount())
	return def, nil
}

// ParseJSON parses and validates a JSON definition document.
func ParseJSON(data []byte) (*Definition, error) {
	var raw rawDefinition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON definition: %w", err)
	}
	return build(raw)
}

// ParseYAML parses and validates a YAML definition document.
func ParseYAML(data []byte) (*Definition, error) {
	var raw rawDefinition
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML definition: %w", err)
	}
	return build(raw)
}
