package runtime_test

import (
	"testing"

	"github.com/Semihazah/skein/internal/runtime"
	"github.com/Semihazah/skein/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := runtime.NewQueue()
	q.Push(runtime.Pending{Request: domain.Request{Locator: "a"}})
	q.Push(runtime.Pending{Request: domain.Request{Locator: "b"}})
	q.Push(runtime.Pending{Request: domain.Request{Locator: "c"}})

	assert.Equal(t, 3, q.Len())

	for _, want := range []string{"a", "b", "c"} {
		head, ok := q.Peek()
		require.True(t, ok)
		assert.Equal(t, want, head.Request.Locator)

		popped, err := q.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, popped.Request.Locator)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PopEmpty(t *testing.T) {
	q := runtime.NewQueue()

	_, ok := q.Peek()
	assert.False(t, ok)

	_, err := q.Pop()
	assert.ErrorIs(t, err, domain.ErrQueueEmpty)
}
