package wasm

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RequiredExports lists the functions the resume module must export,
// beyond the allocator pair.
var RequiredExports = []string{
	ExportParseJSONResume,
	ExportParseLinkedIn,
	ExportParseReactiveV3,
}

// Manifest represents the module.yaml file shipped next to the wasm
// binary.
type Manifest struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Wasm    WasmConfig `yaml:"wasm"`
	Exports []string   `yaml:"exports"`
	Author  string     `yaml:"author"`
	License string     `yaml:"license"`

	// Internal fields
	dir string // Directory containing manifest
}

// WasmConfig holds the wasm binary location.
type WasmConfig struct {
	File string `yaml:"file"`
	Size int    `yaml:"size"` // KB, informational
}

// ParseManifest reads and parses module.yaml from a directory.
func ParseManifest(dir string) (*Manifest, error) {
	manifestPath := filepath.Join(dir, "module.yaml")

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, &ManifestNotFoundError{
			Path: manifestPath,
			Err:  err,
		}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestParseError{
			Path: manifestPath,
			Err:  err,
		}
	}

	m.dir = dir

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return &ManifestValidationError{
			Path:    m.Path(),
			Field:   "name",
			Message: "name is required",
		}
	}

	if m.Version == "" {
		return &ManifestValidationError{
			Path:    m.Path(),
			Field:   "version",
			Message: "version is required",
		}
	}

	if m.Wasm.File == "" {
		return &ManifestValidationError{
			Path:    m.Path(),
			Field:   "wasm.file",
			Message: "wasm.file is required",
		}
	}

	// The manifest must declare every parser export the engine calls.
	declared := make(map[string]bool, len(m.Exports))
	for _, name := range m.Exports {
		declared[name] = true
	}
	for _, name := range RequiredExports {
		if !declared[name] {
			return &ManifestValidationError{
				Path:    m.Path(),
				Field:   "exports",
				Message: fmt.Sprintf("missing required export: %s", name),
			}
		}
	}

	wasmPath := m.WasmPath()
	if _, err := os.Stat(wasmPath); os.IsNotExist(err) {
		return &BinaryNotFoundError{
			ManifestPath: m.Path(),
			WasmFile:     m.Wasm.File,
		}
	}

	return nil
}

// Path returns the manifest file path.
func (m *Manifest) Path() string {
	return filepath.Join(m.dir, "module.yaml")
}

// WasmPath returns the absolute path to the wasm file.
func (m *Manifest) WasmPath() string {
	return filepath.Join(m.dir, m.Wasm.File)
}

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string {
	return m.dir
}
