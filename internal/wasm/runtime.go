package wasm

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// Runtime manages the wazero runtime lifecycle. One Runtime hosts the
// single resume computation module for the life of the process.
type Runtime struct {
	runtime wazero.Runtime
	config  *RuntimeConfig
	logger  *zap.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// RuntimeConfig holds runtime configuration.
type RuntimeConfig struct {
	// Memory limit for the module (in pages, 64KB each).
	// Default: 256 pages = 16MB.
	MemoryPages uint32

	// Enable debug logging for wasm execution.
	Debug bool

	// Compilation cache directory. Empty means in-memory caching only.
	CacheDir string
}

// DefaultRuntimeConfig returns sensible defaults.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		MemoryPages: 256, // 16MB
		Debug:       false,
		CacheDir:    "",
	}
}

// NewRuntime creates and initializes a wazero runtime with WASI and the
// host import module instantiated.
func NewRuntime(ctx context.Context, logger *zap.Logger, config *RuntimeConfig) (*Runtime, error) {
	if config == nil {
		config = DefaultRuntimeConfig()
	}

	rc := wazero.NewRuntimeConfig().WithMemoryLimitPages(config.MemoryPages)
	if config.CacheDir != "" {
		cache, err := wazero.NewCompilationCacheWithDir(config.CacheDir)
		if err != nil {
			return nil, err
		}
		rc = rc.WithCompilationCache(cache)
	}

	r := wazero.NewRuntimeWithConfig(ctx, rc)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, err
	}

	if err := instantiateHost(ctx, r, logger); err != nil {
		_ = r.Close(ctx)
		return nil, err
	}

	runtime := &Runtime{
		runtime: r,
		config:  config,
		logger:  logger.With(zap.String("component", "wasm-runtime")),
		closed:  make(chan struct{}),
	}

	runtime.logger.Info("Wasm runtime initialized",
		zap.Uint32("memory_pages", config.MemoryPages),
		zap.Bool("debug", config.Debug),
		zap.String("cache_dir", config.CacheDir),
	)

	return runtime, nil
}

// Close gracefully shuts down the runtime and every module instantiated
// in it. Safe to call multiple times.
func (r *Runtime) Close(ctx context.Context) error {
	var err error
	r.closeOnce.Do(func() {
		r.logger.Info("Shutting down Wasm runtime")
		err = r.runtime.Close(ctx)
		close(r.closed)
	})
	return err
}

// IsClosed returns whether the runtime has been closed.
func (r *Runtime) IsClosed() bool {
	select {
	case <-r.closed:
		return true
	default:
		return false
	}
}
