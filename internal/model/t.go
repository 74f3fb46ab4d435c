package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type failNow struct{}

// T is handed to every case and hook body. It satisfies the TestingT
// interfaces of testify's assert and require packages.
type T struct {
	ctx context.Context

	mu       sync.Mutex
	messages []string
}

// NewT returns a T bound to ctx.
func NewT(ctx context.Context) *T {
	return &T{ctx: ctx}
}

// Context is done when the run is cancelled or the case deadline passes.
func (t *T) Context() context.Context {
	return t.ctx
}

// Errorf records an assertion failure and lets the body continue.
func (t *T) Errorf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// FailNow stops the body. It must be called from the body's goroutine.
func (t *T) FailNow() {
	t.mu.Lock()
	if len(t.messages) == 0 {
		t.messages = append(t.messages, "FailNow called")
	}
	t.mu.Unlock()

	panic(failNow{})
}

// Helper is a no-op; it exists for testify.
func (t *T) Helper() {}

// Failed reports whether Errorf or FailNow was called.
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.messages) > 0
}

// Err returns the collected assertion failures, or nil.
func (t *T) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.messages) == 0 {
		return nil
	}

	return &AssertionError{Messages: append([]string(nil), t.messages...)}
}

// IsFailNow reports whether a recovered panic value was raised by FailNow.
func IsFailNow(v any) bool {
	_, ok := v.(failNow)
	return ok
}
