package core_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickies/pkg/core"
)

func TestStore_ConcurrentMutations(t *testing.T) {
	slot := NewMockSlot()
	store := core.NewStore(core.Config{Slot: slot, Confirmer: core.AlwaysConfirm})
	store.Load(context.Background())

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ctx := context.Background()
			for i := 0; i < perWorker; i++ {
				n, ok := store.Add(ctx, fmt.Sprintf("w%d", w), fmt.Sprintf("%d", i))
				if !ok {
					t.Errorf("add ignored")
					return
				}
				_ = store.Search("w")
				if i%5 == 0 {
					store.Update(ctx, n.ID, n.Title, "edited")
				}
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, store.Len())
	seen := make(map[int64]bool)
	for _, n := range store.List() {
		assert.False(t, seen[n.ID], "duplicate id %d", n.ID)
		seen[n.ID] = true
	}

	reloaded := core.NewStore(core.Config{Slot: slot})
	reloaded.Load(context.Background())
	assert.Equal(t, store.List(), reloaded.List())
}
