package cancel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randomizedcoder/go-ctrlpool/internal/cancel"
)

func TestContextCanceler(t *testing.T) {
	c := cancel.NewContext(context.Background())

	assert.False(t, c.Done(), "Done() before Cancel()")
	assert.True(t, c.Cancel(), "first Cancel() performs the transition")
	assert.True(t, c.Done(), "Done() after Cancel()")

	// Verify idempotent
	assert.False(t, c.Cancel(), "second Cancel() is a no-op")
	assert.True(t, c.Done())
}

func TestAtomicCanceler(t *testing.T) {
	c := cancel.NewAtomic()

	assert.False(t, c.Done(), "Done() before Cancel()")
	assert.True(t, c.Cancel())
	assert.True(t, c.Done(), "Done() after Cancel()")

	// Verify idempotent
	assert.False(t, c.Cancel())
	assert.True(t, c.Done())
}

func TestContextCanceler_Context(t *testing.T) {
	c := cancel.NewContext(context.Background())

	ctx := c.Context()
	assert.NotNil(t, ctx)

	select {
	case <-ctx.Done():
		t.Error("expected context to not be done")
	default:
	}

	c.Cancel()

	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	default:
		t.Error("expected context to be done after Cancel()")
	}
}

func TestContextCanceler_ParentCancelled(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	c := cancel.NewContext(parent)

	cancelParent()

	assert.True(t, c.Done(), "parent cancellation propagates")
	assert.True(t, c.Cancel(), "Cancel still reports the first explicit call")
}

// Test that both implementations satisfy the interface
func TestCancelerInterface(t *testing.T) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.c.Done(), "Done() initially")
			tc.c.Cancel()
			assert.True(t, tc.c.Done(), "Done() after Cancel()")
		})
	}
}
