package wasm

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestNewRuntime(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	runtime, err := NewRuntime(ctx, logger, nil)
	if err != nil {
		t.Fatalf("Failed to create runtime: %v", err)
	}

	if runtime.IsClosed() {
		t.Error("fresh runtime reports closed")
	}

	if err := runtime.Close(ctx); err != nil {
		t.Errorf("Failed to close runtime: %v", err)
	}
	if !runtime.IsClosed() {
		t.Error("closed runtime reports open")
	}
}

func TestRuntimeCloseIdempotent(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	runtime, err := NewRuntime(ctx, logger, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := runtime.Close(ctx); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := runtime.Close(ctx); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestDefaultRuntimeConfig(t *testing.T) {
	config := DefaultRuntimeConfig()

	if config.MemoryPages != 256 {
		t.Errorf("Default memory pages = %d, want 256", config.MemoryPages)
	}
	if config.Debug {
		t.Error("Debug should be disabled by default")
	}
	if config.CacheDir != "" {
		t.Errorf("Default cache dir = %q, want empty", config.CacheDir)
	}
}

func TestRuntimeConfiguration(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	config := &RuntimeConfig{
		MemoryPages: 128,
		Debug:       true,
		CacheDir:    t.TempDir(),
	}

	runtime, err := NewRuntime(ctx, logger, config)
	if err != nil {
		t.Fatalf("Failed to create runtime: %v", err)
	}
	defer runtime.Close(ctx)

	if runtime.config.MemoryPages != 128 {
		t.Error("Memory pages not set correctly")
	}
}
