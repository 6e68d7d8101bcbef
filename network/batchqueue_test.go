package network

import (
	"sync"
	"testing"
	"time"

	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/stretchr/testify/assert"
)

func TestBatchQueue_DrainKeepsOrder(t *testing.T) {
	q := &BatchQueue{}
	q.Push(netcomponents.SyncBatch{Remove: []netcomponents.EntityID{"a"}})
	q.Push(netcomponents.SyncBatch{Remove: []netcomponents.EntityID{"b"}})
	assert.Equal(t, 2, q.Len())

	got := q.Drain()
	assert.Len(t, got, 2)
	assert.Equal(t, netcomponents.EntityID("a"), got[0].Remove[0])
	assert.Equal(t, netcomponents.EntityID("b"), got[1].Remove[0])

	assert.Empty(t, q.Drain())
	assert.Zero(t, q.Len())
}

func TestBatchQueue_ConcurrentPush(t *testing.T) {
	q := &BatchQueue{}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				q.Push(netcomponents.SyncBatch{})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Drain(), 800)
}

func TestBatchQueue_StampsArrivalTime(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := &BatchQueue{Now: func() time.Time { return at }}

	q.Push(netcomponents.SyncBatch{})
	at = at.Add(30 * time.Millisecond)
	q.Push(netcomponents.SyncBatch{})

	preset := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	q.Push(netcomponents.SyncBatch{ReceivedAt: preset})

	got := q.Drain()
	assert.Len(t, got, 3)
	assert.Equal(t, 30*time.Millisecond, got[1].ReceivedAt.Sub(got[0].ReceivedAt))
	assert.Equal(t, preset, got[2].ReceivedAt)
}
