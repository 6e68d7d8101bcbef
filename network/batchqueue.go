package network

import (
	"sync"
	"time"

	"github.com/automoto/splinesync/shared/netcomponents"
)

// BatchQueue hands sync batches from transport goroutines to the game loop.
type BatchQueue struct {
	mu    sync.Mutex
	items []netcomponents.SyncBatch

	// Now stamps batches on arrival; nil means time.Now.
	Now func() time.Time
}

// Push queues b, stamping its arrival time unless already set.
func (q *BatchQueue) Push(b netcomponents.SyncBatch) {
	if b.ReceivedAt.IsZero() {
		if q.Now != nil {
			b.ReceivedAt = q.Now()
		} else {
			b.ReceivedAt = time.Now()
		}
	}
	q.mu.Lock()
	q.items = append(q.items, b)
	q.mu.Unlock()
}

// Drain returns all queued batches in push order and empties the queue.
func (q *BatchQueue) Drain() []netcomponents.SyncBatch {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

func (q *BatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
