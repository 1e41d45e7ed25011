package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickies/pkg/adapters/memory"
	"github.com/aretw0/stickies/pkg/core"
)

func TestSlot(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot()

	_, err := slot.Read(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrSlotEmpty)

	require.NoError(t, slot.Write(ctx, "notes", []byte("[]")))
	data, err := slot.Read(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	slot.FailWrites(errors.New("full"))
	assert.EqualError(t, slot.Write(ctx, "notes", []byte("[1]")), "full")
	slot.FailWrites(nil)
	assert.NoError(t, slot.Write(ctx, "notes", []byte("[1]")))

	state := slot.State().(memory.SlotState)
	assert.Equal(t, []string{"notes"}, state.Keys)
	assert.Equal(t, 2, state.Writes)
}

func TestSlot_FollowSeesPut(t *testing.T) {
	slot := memory.NewSlot()
	s := core.NewStore(core.Config{Layout: core.Freeform, Slot: slot})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Load(ctx)

	events := s.Events(ctx, 10)
	go s.Follow(ctx)

	// Wait until Follow registered its watcher.
	require.Eventually(t, func() bool {
		return slot.State().(memory.SlotState).Watchers == 1
	}, time.Second, 5*time.Millisecond)

	slot.Put("stickyNotes", []byte(`["from", "elsewhere"]`))

	select {
	case e := <-events:
		assert.Equal(t, core.EventLoad, e.Type)
	case <-time.After(time.Second):
		t.Fatal("no reload after external put")
	}
	notes := s.List()
	require.Len(t, notes, 2)
	assert.Equal(t, "elsewhere", notes[1].Text)
}
