package runtime

import (
	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/ports"
)

// Pending is a queued session request together with the asset handles the
// admission gate polls for readiness.
type Pending struct {
	Request domain.Request
	Program ports.ProgramHandle
	Table   ports.TableHandle
}

// Queue is the strict-FIFO list of pending session requests. It is never
// reordered or prioritized; only the head is ever inspected or removed.
// Not safe for concurrent use: the runtime owns it on the tick thread.
type Queue struct {
	entries []Pending
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends to the tail. It never blocks and always accepts.
func (q *Queue) Push(p Pending) {
	q.entries = append(q.entries, p)
}

// Peek returns the head entry without removing it. ok is false on an empty
// queue.
func (q *Queue) Peek() (Pending, bool) {
	if len(q.entries) == 0 {
		return Pending{}, false
	}
	return q.entries[0], true
}

// Pop removes and returns the head entry. Callers must confirm non-emptiness
// first; popping an empty queue returns domain.ErrQueueEmpty.
func (q *Queue) Pop() (Pending, error) {
	if len(q.entries) == 0 {
		return Pending{}, domain.ErrQueueEmpty
	}
	head := q.entries[0]
	q.entries[0] = Pending{}
	q.entries = q.entries[1:]
	return head, nil
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	return len(q.entries)
}
