package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lc "github.com/aretw0/stickies/pkg/adapters/lifecycle"
	"github.com/aretw0/stickies/pkg/adapters/memory"
	"github.com/aretw0/stickies/pkg/core"
)

func TestSource_Bridge(t *testing.T) {
	store := core.NewStore(core.Config{Slot: memory.NewSlot()})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.Load(ctx)

	src := lc.NewSource(store, 10)
	require.NoError(t, src.Start(ctx))

	n, ok := store.Add(ctx, "hello", "")
	require.True(t, ok)

	select {
	case e := <-src.Events():
		ev, isCore := e.(core.Event)
		require.True(t, isCore)
		assert.Equal(t, core.EventCreate, ev.Type)
		assert.Equal(t, n.ID, ev.ID)
		assert.Contains(t, e.String(), "CREATE")
	case <-time.After(time.Second):
		t.Fatal("no event bridged")
	}

	cancel()
	select {
	case _, open := <-src.Events():
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("source not closed after cancel")
	}
}
