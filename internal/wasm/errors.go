package wasm

import "fmt"

// ManifestNotFoundError occurs when module.yaml is not found in the
// module directory.
type ManifestNotFoundError struct {
	Path string
	Err  error
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("manifest not found at '%s': %v", e.Path, e.Err)
}

func (e *ManifestNotFoundError) Unwrap() error {
	return e.Err
}

// ManifestParseError occurs when module.yaml cannot be parsed as valid YAML.
type ManifestParseError struct {
	Path string
	Err  error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("failed to parse manifest at '%s': %v", e.Path, e.Err)
}

func (e *ManifestParseError) Unwrap() error {
	return e.Err
}

// ManifestValidationError occurs when module.yaml fails validation.
type ManifestValidationError struct {
	Path    string
	Field   string
	Message string
}

func (e *ManifestValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("manifest validation failed at '%s': %s (field: %s)",
			e.Path, e.Message, e.Field)
	}
	return fmt.Sprintf("manifest validation failed at '%s': %s", e.Path, e.Message)
}

// BinaryNotFoundError occurs when the wasm file referenced in the
// manifest does not exist.
type BinaryNotFoundError struct {
	ManifestPath string
	WasmFile     string
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("Wasm file '%s' not found (referenced in manifest '%s')",
		e.WasmFile, e.ManifestPath)
}

// CompilationError occurs when wasm module compilation fails.
type CompilationError struct {
	ModuleName string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("failed to compile Wasm module '%s': %v", e.ModuleName, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// InstantiationError occurs when module instantiation fails.
type InstantiationError struct {
	ModuleName string
	InstanceID string
	Err        error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate module '%s' (instance: %s): %v",
		e.ModuleName, e.InstanceID, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// ExportMissingError occurs when a required exported function is absent
// from the instantiated module.
type ExportMissingError struct {
	ModuleName   string
	FunctionName string
}

func (e *ExportMissingError) Error() string {
	return fmt.Sprintf("function '%s' not exported by module '%s'",
		e.FunctionName, e.ModuleName)
}

// MemoryAccessError occurs when guest memory operations fail.
type MemoryAccessError struct {
	Operation string
	Address   uint32
	Length    uint32
	Err       error
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("memory access failed (op=%s, addr=%d, len=%d): %v",
		e.Operation, e.Address, e.Length, e.Err)
}

func (e *MemoryAccessError) Unwrap() error {
	return e.Err
}

// CallError occurs when an exported function call fails or the module
// reports a parse failure.
type CallError struct {
	FunctionName string
	Err          error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("module call '%s' failed: %v", e.FunctionName, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
