package fs_test

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickies/pkg/adapters/fs"
	"github.com/aretw0/stickies/pkg/core"
)

// TestStress_NoisyNeighbor writes unrelated files into the slot directory
// while the store saves and follows. The store must not panic and the slot
// file must end up matching memory.
func TestStress_NoisyNeighbor(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	dir := filepath.Join(t.TempDir(), ".stickies")
	slot := fs.NewSlot(fs.Config{Path: dir})
	require.NoError(t, slot.Initialize(context.Background()))

	store := core.NewStore(core.Config{Slot: slot})
	store.Load(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var wg sync.WaitGroup

	// External actor: other keys and editor swap files next to ours.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ctx.Err() == nil {
			name := fmt.Sprintf("noise-%d.json", rand.Intn(10))
			if rand.Intn(2) == 0 {
				name = fmt.Sprintf(".notes.json.sw%c", 'a'+rand.Intn(3))
			}
			_ = os.WriteFile(filepath.Join(dir, name), []byte("noise"), 0644)
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		}
	}()

	// Internal actor.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ctx.Err() == nil; i++ {
			store.Add(context.Background(), fmt.Sprintf("note %d", i), "")
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = store.Follow(ctx)
	}()

	wg.Wait()

	require.NoError(t, store.PersistErr())
	reopened := core.NewStore(core.Config{Slot: fs.NewSlot(fs.Config{Path: dir})})
	reopened.Load(context.Background())
	assert.Equal(t, store.List(), reopened.List())
	t.Logf("Survived chaos with %d notes", store.Len())
}
