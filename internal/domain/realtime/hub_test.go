package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestHub_PublishFanOut(t *testing.T) {
	hub := NewHub(slog.Default())

	id1, ch1 := hub.Subscribe()
	_, ch2 := hub.Subscribe()
	require.Equal(t, 2, hub.Count())

	hub.Publish(Change{Table: "issues", Event: EventUpdate, RecordID: "7"})

	for _, ch := range []<-chan Change{ch1, ch2} {
		select {
		case c := <-ch:
			assert.Equal(t, "issues", c.Table)
			assert.Equal(t, EventUpdate, c.Event)
			assert.Equal(t, "7", c.RecordID)
			assert.False(t, c.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("change not delivered")
		}
	}

	hub.Unsubscribe(id1)
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, hub.Count())
}

func TestHub_UnsubscribeTwice(t *testing.T) {
	hub := NewHub(slog.Default())
	id, _ := hub.Subscribe()

	hub.Unsubscribe(id)
	assert.NotPanics(t, func() { hub.Unsubscribe(id) })
	assert.Equal(t, 0, hub.Count())
}

func TestHub_PublishDoesNotBlock(t *testing.T) {
	hub := NewHub(slog.Default())
	_, ch := hub.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			hub.Publish(Change{Table: "issues", Event: EventInsert})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_OnCountChange(t *testing.T) {
	hub := NewHub(slog.Default())

	var mu sync.Mutex
	var counts []int
	hub.OnCountChange = func(n int) {
		mu.Lock()
		counts = append(counts, n)
		mu.Unlock()
	}

	id1, _ := hub.Subscribe()
	id2, _ := hub.Subscribe()
	hub.Unsubscribe(id1)
	hub.Unsubscribe(id2)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 1, 0}, counts)
}
