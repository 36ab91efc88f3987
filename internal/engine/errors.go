package engine

import (
	"errors"
	"fmt"
)

// NotInitializedMessage is the literal condition reported by native-only
// operations while the module is unavailable. Callers match on it (or on
// ErrNotInitialized) before falling back to alternate UX.
const NotInitializedMessage = "wasm module is not initialized"

// ErrNotInitialized is the sentinel every *NotInitializedError unwraps to.
var ErrNotInitialized = errors.New(NotInitializedMessage)

// NotInitializedError is returned by native-only operations in every
// non-ready state. It is a recoverable, caller-visible condition, not a
// crash.
type NotInitializedError struct {
	Op Op
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, NotInitializedMessage)
}

func (e *NotInitializedError) Unwrap() error {
	return ErrNotInitialized
}
