// Package supersede provides small latest-wins primitives: a generation
// counter paired with a cancellation handle, and a debounce token.
//
// The generation check is what decides whether an outcome may be applied.
// Cancellation only releases resources held by superseded work and may
// arrive late or not at all.
package supersede

import (
	"context"
	"sync"
)

// Task tracks the newest of a sequence of superseding operations
type Task struct {
	mu         sync.Mutex
	parent     context.Context
	generation uint64
	cancel     context.CancelFunc
}

// NewTask creates a task whose handles derive from parent
func NewTask(parent context.Context) *Task {
	if parent == nil {
		parent = context.Background()
	}
	return &Task{parent: parent}
}

// Begin allocates a new generation, cancels the previous handle and returns
// a context bound to the new one. At most one handle is active at a time.
func (t *Task) Begin() (uint64, context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generation++
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(t.parent)
	t.cancel = cancel
	return t.generation, ctx
}

// Invalidate bumps the generation and cancels the active handle without
// starting a new operation
func (t *Task) Invalidate() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generation++
	t.stopLocked()
	return t.generation
}

// Stop cancels the active handle, keeping the generation
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// IsCurrent reports whether gen is the newest generation
func (t *Task) IsCurrent(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.generation
}

// Generation returns the newest generation
func (t *Task) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}

func (t *Task) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
