package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openresume/engine/internal/config"
	"github.com/openresume/engine/internal/engine"
	"github.com/openresume/engine/internal/wasm"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:     "resumectl",
	Short:   "Resume document toolkit backed by the wasm computation module",
	Long: `resumectl builds, converts, and validates resume documents.

Template data, document construction, and serialization work with or
without the computation module; the format parsers (json, linkedin, v3)
need the module to be present and loadable.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("resumectl %s (commit %s, built %s)\n", version, commit, date))
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// setup loads configuration and builds the logger shared by all
// subcommands.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}

	var logger *zap.Logger
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

// buildEngine wires the façade to the module loader described by the
// configuration and kicks off the one-shot load attempt.
func buildEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*engine.Engine, *wasm.Loader) {
	runtimeConfig := &wasm.RuntimeConfig{
		MemoryPages: cfg.Wasm.MemoryPages,
		Debug:       cfg.Wasm.Debug,
		CacheDir:    cfg.Wasm.CacheDir,
	}
	loader := wasm.NewLoader(wasm.Attempt(cfg.Module.Dir, runtimeConfig, logger), logger)
	return engine.New(ctx, loader, logger), loader
}

// waitSettled polls the loader until the load attempt resolves to Ready
// or Failed. The engine API never blocks on the in-flight load, so a
// one-shot CLI polls here before invoking the native-only parsers.
func waitSettled(ctx context.Context, loader *wasm.Loader) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		switch loader.State() {
		case wasm.StateReady, wasm.StateFailed:
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
