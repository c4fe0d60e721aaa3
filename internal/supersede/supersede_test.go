package supersede

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginCancelsPreviousHandle(t *testing.T) {
	task := NewTask(context.Background())

	gen1, ctx1 := task.Begin()
	gen2, ctx2 := task.Begin()

	assert.Greater(t, gen2, gen1)
	require.ErrorIs(t, ctx1.Err(), context.Canceled, "superseded handle must be cancelled")
	assert.NoError(t, ctx2.Err(), "newest handle stays active")
	assert.False(t, task.IsCurrent(gen1))
	assert.True(t, task.IsCurrent(gen2))
}

func TestInvalidateBumpsGenerationAndCancels(t *testing.T) {
	task := NewTask(nil)

	gen, ctx := task.Begin()
	next := task.Invalidate()

	assert.Equal(t, gen+1, next)
	assert.False(t, task.IsCurrent(gen))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, next, task.Generation())
}

func TestStopKeepsGeneration(t *testing.T) {
	task := NewTask(context.Background())

	gen, ctx := task.Begin()
	task.Stop()

	assert.True(t, task.IsCurrent(gen))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	// stopping twice is harmless
	task.Stop()
}

func TestParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	task := NewTask(parent)

	_, ctx := task.Begin()
	cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestGenerationIsMonotonicUnderConcurrency(t *testing.T) {
	task := NewTask(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task.Begin()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), task.Generation())
}

func TestDebouncerOnlyNewestFires(t *testing.T) {
	var d Debouncer

	first := d.Next()
	second := d.Next()

	assert.False(t, d.Fire(first), "superseded token must not fire")
	assert.True(t, d.Fire(second))
	assert.False(t, d.Fire(second), "a token fires at most once")
}

func TestDebouncerStop(t *testing.T) {
	var d Debouncer

	seq := d.Next()
	d.Stop()

	assert.False(t, d.Fire(seq))

	again := d.Next()
	assert.True(t, d.Fire(again))
}
