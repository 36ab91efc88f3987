package wasm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// Names of the functions the resume module exports. The parser exports
// take (ptr, len) of the input payload and return ptr<<32|len of the
// canonical document JSON, or 0 when the input cannot be parsed.
const (
	ExportParseJSONResume = "parse_json_resume"
	ExportParseLinkedIn   = "parse_linkedin_export"
	ExportParseReactiveV3 = "parse_reactive_v3"

	exportAllocate   = "allocate"
	exportDeallocate = "deallocate"
)

// Exports is the call surface the engine uses on the loaded module.
// Every method returns canonical document JSON produced by the guest.
type Exports interface {
	ParseJSONResume(ctx context.Context, input []byte) ([]byte, error)
	ParseLinkedIn(ctx context.Context, input []byte) ([]byte, error)
	ParseReactiveV3(ctx context.Context, input []byte) ([]byte, error)
}

// Module is an instantiated resume computation module.
type Module struct {
	module api.Module
	memory *Memory
	logger *zap.Logger

	// Instance metadata.
	ID        string
	Name      string
	CreatedAt int64

	// Exported functions, cached at instantiation.
	exports map[string]api.Function
}

// NewModule compiles and instantiates the wasm binary described by the
// manifest inside the given runtime, then verifies its export surface.
func NewModule(ctx context.Context, runtime *Runtime, manifest *Manifest, logger *zap.Logger) (*Module, error) {
	logger = logger.With(zap.String("component", "wasm-module"))

	wasmBytes, err := os.ReadFile(manifest.WasmPath())
	if err != nil {
		return nil, &BinaryNotFoundError{
			ManifestPath: manifest.Path(),
			WasmFile:     manifest.Wasm.File,
		}
	}

	logger.Info("Compiling Wasm module",
		zap.String("module", manifest.Name),
		zap.Int("size_bytes", len(wasmBytes)),
	)

	startTime := time.Now()

	compiled, err := runtime.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, &CompilationError{
			ModuleName: manifest.Name,
			Err:        err,
		}
	}

	instanceID := uuid.NewString()

	moduleConfig := wazero.NewModuleConfig().
		WithName(instanceID).
		WithStartFunctions("_initialize", "_start")

	instance, err := runtime.runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return nil, &InstantiationError{
			ModuleName: manifest.Name,
			InstanceID: instanceID,
			Err:        err,
		}
	}

	exports := make(map[string]api.Function)
	required := append([]string{exportAllocate, exportDeallocate}, RequiredExports...)
	for _, name := range required {
		fn := instance.ExportedFunction(name)
		if fn == nil {
			_ = instance.Close(ctx)
			return nil, &ExportMissingError{
				ModuleName:   manifest.Name,
				FunctionName: name,
			}
		}
		exports[name] = fn
	}

	m := &Module{
		module:    instance,
		logger:    logger,
		ID:        instanceID,
		Name:      manifest.Name,
		CreatedAt: time.Now().Unix(),
		exports:   exports,
	}
	m.memory = newMemory(instance, exports[exportAllocate], exports[exportDeallocate])

	logger.Info("Module instantiated",
		zap.String("instance_id", instanceID),
		zap.Duration("compile_duration", time.Since(startTime)),
		zap.Int("exported_functions", len(exports)),
	)

	return m, nil
}

// ParseJSONResume parses the native JSON schema.
func (m *Module) ParseJSONResume(ctx context.Context, input []byte) ([]byte, error) {
	return m.call(ctx, ExportParseJSONResume, input)
}

// ParseLinkedIn parses a LinkedIn data-export archive.
func (m *Module) ParseLinkedIn(ctx context.Context, input []byte) ([]byte, error) {
	return m.call(ctx, ExportParseLinkedIn, input)
}

// ParseReactiveV3 migrates a legacy v3 document into the current shape.
func (m *Module) ParseReactiveV3(ctx context.Context, input []byte) ([]byte, error) {
	return m.call(ctx, ExportParseReactiveV3, input)
}

// Close releases the module instance.
func (m *Module) Close(ctx context.Context) error {
	return m.module.Close(ctx)
}

// call runs one parser export: copy the input into guest memory, invoke,
// copy the result out, and return both regions to the guest allocator.
func (m *Module) call(ctx context.Context, name string, input []byte) ([]byte, error) {
	fn := m.exports[name]
	if fn == nil {
		return nil, &ExportMissingError{ModuleName: m.Name, FunctionName: name}
	}

	inPtr, err := m.memory.WriteBytes(ctx, input)
	if err != nil {
		return nil, err
	}
	defer func() {
		if freeErr := m.memory.Free(ctx, inPtr, uint32(len(input))); freeErr != nil {
			m.logger.Warn("Failed to free guest input buffer", zap.Error(freeErr))
		}
	}()

	results, err := fn.Call(ctx, uint64(inPtr), uint64(len(input)))
	if err != nil {
		return nil, &CallError{FunctionName: name, Err: err}
	}
	if len(results) != 1 {
		return nil, &CallError{
			FunctionName: name,
			Err:          fmt.Errorf("unexpected result arity %d", len(results)),
		}
	}

	packed := results[0]
	if packed == 0 {
		return nil, &CallError{FunctionName: name, Err: errors.New("module reported a parse failure")}
	}

	outPtr := uint32(packed >> 32)
	outLen := uint32(packed)

	out, err := m.memory.ReadBytes(outPtr, outLen)
	if err != nil {
		return nil, err
	}

	if freeErr := m.memory.Free(ctx, outPtr, outLen); freeErr != nil {
		m.logger.Warn("Failed to free guest output buffer", zap.Error(freeErr))
	}

	return out, nil
}
