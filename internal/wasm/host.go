package wasm

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// instantiateHost registers the "host" import module so guest code can
// log through the engine's logger.
func instantiateHost(ctx context.Context, r wazero.Runtime, logger *zap.Logger) error {
	hostLogger := logger.With(zap.String("component", "wasm-host"))

	logMessage := func(ctx context.Context, mod api.Module, level uint32, ptr uint32, length uint32) {
		msg, ok := mod.Memory().Read(ptr, length)
		if !ok {
			hostLogger.Error("Failed to read log message from Wasm memory",
				zap.Uint32("ptr", ptr),
				zap.Uint32("length", length),
			)
			return
		}

		// 0 = debug, 1 = info, 2 = warn, 3 = error
		switch level {
		case 0:
			hostLogger.Debug(string(msg))
		case 1:
			hostLogger.Info(string(msg))
		case 2:
			hostLogger.Warn(string(msg))
		case 3:
			hostLogger.Error(string(msg))
		default:
			hostLogger.Info(string(msg))
		}
	}

	_, err := r.NewHostModuleBuilder("host").
		NewFunctionBuilder().
		WithFunc(logMessage).
		WithParameterNames("level", "ptr", "length").
		Export("log_message").
		Instantiate(ctx)
	return err
}
