// Package engine is the public façade over the resume computation
// module. Every operation is synchronous: it routes on the loader's
// cached readiness and never awaits the in-flight load. Operations with
// an in-process fallback succeed in every readiness state; the three
// parsers fail deterministically until the module is ready.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openresume/engine/internal/registry"
	"github.com/openresume/engine/internal/resume"
	"github.com/openresume/engine/internal/wasm"
)

// Engine dispatches public operations per the Dispatch policy table.
// It holds no document state; documents belong to callers.
type Engine struct {
	loader *wasm.Loader
	logger *zap.Logger
}

// New wires the façade to a module loader and triggers the load attempt.
// Start is idempotent, so sharing a loader between engines is safe.
func New(ctx context.Context, loader *wasm.Loader, logger *zap.Logger) *Engine {
	loader.Start(ctx)
	return &Engine{
		loader: loader,
		logger: logger.With(zap.String("component", "engine")),
	}
}

// Ready reports whether the computation module loaded successfully.
// False covers not-loaded, still-loading, and failed alike.
func (e *Engine) Ready() bool {
	return e.loader.Ready()
}

// ListTemplates returns the 12 template identifiers in display order,
// identical in both readiness states.
func (e *Engine) ListTemplates() []string {
	return registry.Names()
}

// TemplateTheme returns the theme of a template identifier. Unknown
// identifiers report ok == false, never an error.
func (e *Engine) TemplateTheme(name string) (registry.Theme, bool) {
	return registry.ThemeOf(name)
}

// EmptyResume builds the schema-valid default document.
func (e *Engine) EmptyResume() resume.Document {
	return resume.NewDocument()
}

// ResumeToJSON encodes a document into its canonical text form.
func (e *Engine) ResumeToJSON(doc resume.Document) (string, error) {
	return resume.ToJSON(doc)
}

// ParseJSONResume parses native-schema resume JSON. Native-only: fails
// with the not-initialized condition while the module is unavailable.
func (e *Engine) ParseJSONResume(ctx context.Context, text string) (resume.Document, error) {
	exports, err := e.native(OpParseJSONResume)
	if err != nil {
		return resume.Document{}, err
	}
	out, err := exports.ParseJSONResume(ctx, []byte(text))
	if err != nil {
		return resume.Document{}, err
	}
	return e.decode(out)
}

// ParseLinkedIn parses a LinkedIn data-export archive. Native-only.
func (e *Engine) ParseLinkedIn(ctx context.Context, data []byte) (resume.Document, error) {
	exports, err := e.native(OpParseLinkedIn)
	if err != nil {
		return resume.Document{}, err
	}
	out, err := exports.ParseLinkedIn(ctx, data)
	if err != nil {
		return resume.Document{}, err
	}
	return e.decode(out)
}

// ParseReactiveV3 migrates a legacy v3 document into the current shape.
// Native-only.
func (e *Engine) ParseReactiveV3(ctx context.Context, text string) (resume.Document, error) {
	exports, err := e.native(OpParseReactiveV3)
	if err != nil {
		return resume.Document{}, err
	}
	out, err := exports.ParseReactiveV3(ctx, []byte(text))
	if err != nil {
		return resume.Document{}, err
	}
	return e.decode(out)
}

// native resolves the module surface for an operation the Dispatch table
// marks native-only. Any non-ready loader state yields the same
// deterministic failure; callers poll Ready later if they want the
// native path once loading finishes.
func (e *Engine) native(op Op) (wasm.Exports, error) {
	if Dispatch[op].HasFallback {
		return nil, fmt.Errorf("operation %s has a fallback and must not route through the module", op)
	}
	if exports, ok := e.loader.Exports(); ok {
		return exports, nil
	}
	e.logger.Debug("Native-only operation refused",
		zap.String("op", string(op)),
		zap.String("state", e.loader.State().String()),
	)
	return nil, &NotInitializedError{Op: op}
}

// decode turns module output into a Document, checking it against the
// canonical schema and the structural invariants first.
func (e *Engine) decode(out []byte) (resume.Document, error) {
	if err := resume.ValidateJSON(out); err != nil {
		return resume.Document{}, err
	}
	doc, err := resume.FromJSON(out)
	if err != nil {
		return resume.Document{}, err
	}
	if err := resume.Validate(doc); err != nil {
		return resume.Document{}, err
	}
	return doc, nil
}
