package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdscaffold/gdscaffold/internal/faults"
	"go.yaml.in/yaml/v3"
)

//go:embed default.yaml
var defaultManifest []byte

// DefaultBytes returns the manifest written by "init".
func DefaultBytes() []byte {
	out := make([]byte, len(defaultManifest))
	copy(out, defaultManifest)
	return out
}

// Default returns the built-in manifest, resolving paths against dir.
func Default(dir string) *Manifest {
	m, err := ParseBytes(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("embedded default manifest is invalid: %v", err))
	}
	m.dir = dir
	return m
}

// Parse reads and decodes a manifest file without schema validation.
// Relative paths in the manifest resolve against the file's directory.
func Parse(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	m, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path %s: %w", path, err)
	}
	m.dir = filepath.Dir(abs)
	return m, nil
}

// ParseBytes decodes manifest YAML and applies defaults.
func ParseBytes(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	m.applyDefaults()
	return &m, nil
}

// Load validates a manifest file against the schema and decodes it. Schema
// violations are returned as a ConfigurationError listing every issue.
func Load(path string) (*Manifest, error) {
	result, err := ValidateFile(path)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &faults.ConfigurationError{Path: path, Reason: result.Summary()}
	}
	return Parse(path)
}

// readFile reads a manifest, reporting a missing file as a ConfigurationError.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, faults.Configuration(path, "manifest does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
