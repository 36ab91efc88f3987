package engine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/openresume/engine/internal/resume"
	"github.com/openresume/engine/internal/wasm"
)

// echoExports canonicalizes whatever JSON it receives, standing in for a
// loaded module. The non-JSON parsers return the default document.
type echoExports struct{}

func (echoExports) ParseJSONResume(ctx context.Context, input []byte) ([]byte, error) {
	doc, err := resume.FromJSON(input)
	if err != nil {
		return nil, err
	}
	text, err := resume.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func (echoExports) ParseLinkedIn(ctx context.Context, input []byte) ([]byte, error) {
	doc := resume.NewDocument()
	doc.Basics.Name = "Jane Doe"
	text, err := resume.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func (echoExports) ParseReactiveV3(ctx context.Context, input []byte) ([]byte, error) {
	text, err := resume.ToJSON(resume.NewDocument())
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// badExports returns output that is not a valid document.
type badExports struct{ echoExports }

func (badExports) ParseJSONResume(ctx context.Context, input []byte) ([]byte, error) {
	return []byte(`{"basics":{}}`), nil
}

func waitState(t *testing.T, loader *wasm.Loader, want wasm.State) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if loader.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("loader state = %v, want %v", loader.State(), want)
}

func failedEngine(t *testing.T) *Engine {
	t.Helper()
	loader := wasm.NewLoader(func(ctx context.Context) (wasm.Exports, error) {
		return nil, errors.New("binary missing")
	}, zap.NewNop())
	e := New(context.Background(), loader, zap.NewNop())
	waitState(t, loader, wasm.StateFailed)
	return e
}

func readyEngine(t *testing.T, exports wasm.Exports) *Engine {
	t.Helper()
	loader := wasm.NewLoader(func(ctx context.Context) (wasm.Exports, error) {
		return exports, nil
	}, zap.NewNop())
	e := New(context.Background(), loader, zap.NewNop())
	waitState(t, loader, wasm.StateReady)
	return e
}

func TestFallbackOperationsWhenNotReady(t *testing.T) {
	e := failedEngine(t)

	if e.Ready() {
		t.Error("Ready() should be false after a failed load")
	}

	templates := e.ListTemplates()
	if len(templates) != 12 {
		t.Fatalf("ListTemplates() returned %d entries, want 12", len(templates))
	}
	if templates[0] != "rhyhorn" {
		t.Errorf("ListTemplates()[0] = %q, want rhyhorn", templates[0])
	}

	if _, ok := e.TemplateTheme("pikachu"); !ok {
		t.Error("TemplateTheme(pikachu) should succeed via fallback")
	}
	if _, ok := e.TemplateTheme("nonexistent-template"); ok {
		t.Error("TemplateTheme should report unknown identifiers as absent")
	}

	doc := e.EmptyResume()
	if doc.Metadata.Template != "rhyhorn" {
		t.Errorf("EmptyResume() template = %q, want rhyhorn", doc.Metadata.Template)
	}

	text, err := e.ResumeToJSON(doc)
	if err != nil {
		t.Fatalf("ResumeToJSON failed via fallback: %v", err)
	}
	if text == "" {
		t.Error("ResumeToJSON returned empty text")
	}
}

func TestParsersFailWhenNotReady(t *testing.T) {
	e := failedEngine(t)
	ctx := context.Background()

	tests := []struct {
		op   Op
		call func() error
	}{
		{OpParseJSONResume, func() error { _, err := e.ParseJSONResume(ctx, "{}"); return err }},
		{OpParseLinkedIn, func() error { _, err := e.ParseLinkedIn(ctx, []byte{}); return err }},
		{OpParseReactiveV3, func() error { _, err := e.ParseReactiveV3(ctx, "{}"); return err }},
	}

	for _, tt := range tests {
		err := tt.call()
		if err == nil {
			t.Fatalf("%s should fail when the module is not ready", tt.op)
		}
		if !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%s error does not match ErrNotInitialized: %v", tt.op, err)
		}

		var notInit *NotInitializedError
		if !errors.As(err, &notInit) {
			t.Fatalf("%s error is %T, want *NotInitializedError", tt.op, err)
		}
		if notInit.Op != tt.op {
			t.Errorf("error op = %q, want %q", notInit.Op, tt.op)
		}
		if !strings.Contains(err.Error(), NotInitializedMessage) {
			t.Errorf("error %q does not carry the fixed message %q", err, NotInitializedMessage)
		}
	}
}

func TestParsersFailWhileLoading(t *testing.T) {
	release := make(chan struct{})
	loader := wasm.NewLoader(func(ctx context.Context) (wasm.Exports, error) {
		<-release
		return echoExports{}, nil
	}, zap.NewNop())
	t.Cleanup(func() { close(release) })

	e := New(context.Background(), loader, zap.NewNop())

	// A call issued mid-load routes exactly as if the load had failed.
	if e.Ready() {
		t.Error("Ready() should be false while loading")
	}
	if _, err := e.ParseJSONResume(context.Background(), "{}"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("mid-load parse error = %v, want not-initialized", err)
	}
	if len(e.ListTemplates()) != 12 {
		t.Error("fallback operations should still succeed while loading")
	}
}

func TestRoundTripWhenReady(t *testing.T) {
	e := readyEngine(t, echoExports{})
	ctx := context.Background()

	doc := e.EmptyResume()
	text, err := e.ResumeToJSON(doc)
	if err != nil {
		t.Fatal(err)
	}

	back, err := e.ParseJSONResume(ctx, text)
	if err != nil {
		t.Fatalf("ParseJSONResume failed: %v", err)
	}

	if !reflect.DeepEqual(doc, back) {
		t.Errorf("round trip changed the document:\n got %+v\nwant %+v", back, doc)
	}
}

func TestParsersWhenReady(t *testing.T) {
	e := readyEngine(t, echoExports{})
	ctx := context.Background()

	doc, err := e.ParseLinkedIn(ctx, []byte("archive-bytes"))
	if err != nil {
		t.Fatalf("ParseLinkedIn failed: %v", err)
	}
	if doc.Basics.Name != "Jane Doe" {
		t.Errorf("ParseLinkedIn name = %q", doc.Basics.Name)
	}

	if _, err := e.ParseReactiveV3(ctx, "{}"); err != nil {
		t.Fatalf("ParseReactiveV3 failed: %v", err)
	}
}

func TestFallbackOperationsIdenticalWhenReady(t *testing.T) {
	e := readyEngine(t, echoExports{})

	if !e.Ready() {
		t.Fatal("Ready() should be true")
	}

	templates := e.ListTemplates()
	if len(templates) != 12 || templates[0] != "rhyhorn" {
		t.Errorf("ListTemplates() in ready state = %v", templates)
	}
	if _, ok := e.TemplateTheme("onyx"); !ok {
		t.Error("TemplateTheme(onyx) should succeed in ready state")
	}
	if got := e.EmptyResume(); got.Metadata.Template != "rhyhorn" {
		t.Errorf("EmptyResume() template = %q in ready state", got.Metadata.Template)
	}
}

func TestModuleOutputIsValidated(t *testing.T) {
	e := readyEngine(t, badExports{})

	_, err := e.ParseJSONResume(context.Background(), "{}")
	if err == nil {
		t.Fatal("engine should reject module output that fails the schema")
	}
	if _, ok := err.(*resume.SchemaError); !ok {
		t.Errorf("expected *resume.SchemaError, got %T: %v", err, err)
	}
}

func TestDispatchPolicy(t *testing.T) {
	wantFallback := map[Op]bool{
		OpIsReady:         true,
		OpListTemplates:   true,
		OpTemplateTheme:   true,
		OpEmptyResume:     true,
		OpResumeToJSON:    true,
		OpParseJSONResume: false,
		OpParseLinkedIn:   false,
		OpParseReactiveV3: false,
	}

	if len(Dispatch) != len(wantFallback) {
		t.Fatalf("Dispatch has %d operations, want %d", len(Dispatch), len(wantFallback))
	}

	for op, want := range wantFallback {
		policy, ok := Dispatch[op]
		if !ok {
			t.Errorf("Dispatch is missing operation %q", op)
			continue
		}
		if policy.HasFallback != want {
			t.Errorf("Dispatch[%q].HasFallback = %v, want %v", op, policy.HasFallback, want)
		}
	}
}

func TestOperationsIdempotent(t *testing.T) {
	e := failedEngine(t)

	first := e.ListTemplates()
	for i := 0; i < 5; i++ {
		if e.Ready() {
			t.Fatal("Ready() flipped without a load")
		}
		if !reflect.DeepEqual(e.ListTemplates(), first) {
			t.Fatal("ListTemplates() changed between calls")
		}
		if !reflect.DeepEqual(e.EmptyResume(), e.EmptyResume()) {
			t.Fatal("EmptyResume() is not deterministic")
		}
	}
}
