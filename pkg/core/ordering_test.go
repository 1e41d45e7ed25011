package core_test

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickies/pkg/core"
)

// gatedSlot holds the next Read open until release is closed.
type gatedSlot struct {
	*MockSlot
	mu      sync.Mutex
	armed   bool
	reading chan struct{}
	release chan struct{}
}

func newGatedSlot() *gatedSlot {
	return &gatedSlot{MockSlot: NewMockSlot()}
}

func (g *gatedSlot) arm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armed = true
	g.reading = make(chan struct{})
	g.release = make(chan struct{})
}

func (g *gatedSlot) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := g.MockSlot.Read(ctx, key)

	g.mu.Lock()
	armed := g.armed
	g.armed = false
	reading, release := g.reading, g.release
	g.mu.Unlock()

	if armed {
		close(reading)
		<-release
	}
	return data, err
}

func TestStore_LoadOvertakenByMutation(t *testing.T) {
	ctx := context.Background()
	slot := newGatedSlot()
	store := newRecords(t, slot)
	_, ok := store.Add(ctx, "first", "")
	require.True(t, ok)

	slot.arm()
	loaded := make(chan struct{})
	go func() {
		defer close(loaded)
		store.Load(ctx)
	}()
	<-slot.reading

	_, ok = store.Add(ctx, "concurrent", "")
	require.True(t, ok)
	close(slot.release)
	<-loaded

	require.Equal(t, 2, store.Len(), "stale read must not replace a newer list")
	assert.Contains(t, slot.raw("notes"), `"concurrent"`)

	store.Add(ctx, "third", "")
	raw := slot.raw("notes")
	for _, title := range []string{"first", "concurrent", "third"} {
		assert.Contains(t, raw, fmt.Sprintf("%q", title))
	}

	// An undisturbed reload still picks up the slot.
	store.Load(ctx)
	assert.Equal(t, 3, store.Len())
}

func TestStore_EventsFollowWriteOrder(t *testing.T) {
	store := newRecords(t, NewMockSlot())

	var (
		mu     sync.Mutex
		events []core.Event
	)
	store.Subscribe(func(e core.Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			for i := 0; i < perWorker; i++ {
				n, _ := store.Add(ctx, "x", "")
				store.Delete(ctx, n.ID)
			}
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) == 2*workers*perWorker
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	created := make(map[int64]bool)
	for _, e := range events {
		switch e.Type {
		case core.EventCreate:
			created[e.ID] = true
		case core.EventDelete:
			assert.True(t, created[e.ID], "DELETE of %d delivered before its CREATE", e.ID)
		}
	}
}

func TestStore_SubscriberMayMutate(t *testing.T) {
	ctx := context.Background()
	store := newRecords(t, NewMockSlot())

	var got []core.EventType
	store.Subscribe(func(e core.Event) {
		got = append(got, e.Type)
		if e.Type == core.EventCreate {
			store.Update(ctx, e.ID, "renamed", "")
		}
	})

	n, _ := store.Add(ctx, "a", "")
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventModify}, got)
	updated, _ := store.Get(n.ID)
	assert.Equal(t, "renamed", updated.Title)
}

func TestStore_OutOfRangeIDsReplaced(t *testing.T) {
	ctx := context.Background()
	slot := NewMockSlot()
	require.NoError(t, slot.Write(ctx, "notes",
		[]byte(fmt.Sprintf(`[{"id":%d,"title":"huge","text":""}]`, int64(math.MaxInt64)))))

	store := newRecords(t, slot)
	notes := store.List()
	require.Len(t, notes, 1)
	assert.Positive(t, notes[0].ID)
	assert.LessOrEqual(t, notes[0].ID, core.MaxID)

	n, ok := store.Add(ctx, "next", "")
	require.True(t, ok)
	assert.Positive(t, n.ID)
	assert.NotEqual(t, notes[0].ID, n.ID)
}
