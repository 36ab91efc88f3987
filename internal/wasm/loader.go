package wasm

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// State is the loader's knowledge of whether the module is usable.
// It only ever moves forward: NotLoaded -> Loading -> Ready or Failed.
type State int32

const (
	StateNotLoaded State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "not_loaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AttemptFunc performs the single load attempt and returns the module's
// export surface, or the reason it could not be produced.
type AttemptFunc func(ctx context.Context) (Exports, error)

// Loader owns the one-time asynchronous attempt to load the computation
// module. A failed attempt is absorbed into the Failed state and logged;
// it is never surfaced to callers. There is no retry and no cancellation
// of a started attempt.
type Loader struct {
	attempt AttemptFunc
	logger  *zap.Logger

	once    sync.Once
	state   atomic.Int32
	exports atomic.Value // Exports, stored before the Ready transition
	done    chan struct{}
}

// NewLoader creates a loader around a load attempt. Nothing is loaded
// until Start is called.
func NewLoader(attempt AttemptFunc, logger *zap.Logger) *Loader {
	return &Loader{
		attempt: attempt,
		logger:  logger.With(zap.String("component", "module-loader")),
		done:    make(chan struct{}),
	}
}

// Start triggers the load attempt in the background. Repeated or
// concurrent calls are no-ops; all observers converge on the outcome of
// the first call.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		l.state.Store(int32(StateLoading))
		l.logger.Info("Loading computation module")
		go l.run(ctx)
	})
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)

	exports, err := l.attempt(ctx)
	if err != nil {
		// Degrade gracefully: fallback paths stay active.
		l.logger.Warn("Computation module unavailable",
			zap.Error(err),
		)
		l.state.Store(int32(StateFailed))
		return
	}

	l.exports.Store(exports)
	l.state.Store(int32(StateReady))
	l.logger.Info("Computation module ready")
}

// Ready reports whether the module loaded successfully. It returns
// false while a load is still in flight; callers wanting native
// behavior once loading finishes must poll again later.
func (l *Loader) Ready() bool {
	return l.State() == StateReady
}

// State returns the current readiness state. The engine itself only
// consults Ready; State exists for logging and tests.
func (l *Loader) State() State {
	return State(l.state.Load())
}

// Exports returns the module's call surface, available only in the
// Ready state.
func (l *Loader) Exports() (Exports, bool) {
	if !l.Ready() {
		return nil, false
	}
	exports, ok := l.exports.Load().(Exports)
	return exports, ok
}

// Attempt builds the production load attempt: parse the manifest in
// dir, bring up a wazero runtime, and instantiate the module.
func Attempt(dir string, config *RuntimeConfig, logger *zap.Logger) AttemptFunc {
	return func(ctx context.Context) (Exports, error) {
		manifest, err := ParseManifest(dir)
		if err != nil {
			return nil, err
		}

		runtime, err := NewRuntime(ctx, logger, config)
		if err != nil {
			return nil, err
		}

		module, err := NewModule(ctx, runtime, manifest, logger)
		if err != nil {
			_ = runtime.Close(ctx)
			return nil, err
		}

		return module, nil
	}
}
