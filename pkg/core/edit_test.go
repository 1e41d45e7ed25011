package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickies/pkg/core"
)

func TestEditMode(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancel Discards Draft", func(t *testing.T) {
		s := newRecords(t, NewMockSlot())
		n, _ := s.Add(ctx, "title", "text")

		d, err := s.BeginEdit(n.ID)
		require.NoError(t, err)
		assert.Equal(t, core.Draft{ID: n.ID, Title: "title", Text: "text"}, d)

		s.SetDraft("changed", "changed")
		s.CancelEdit()

		_, editing := s.Editing()
		assert.False(t, editing)
		got, _ := s.Get(n.ID)
		assert.Equal(t, "title", got.Title)
		assert.False(t, s.SaveEdit(ctx))
	})

	t.Run("Save Trims And Leaves Edit Mode", func(t *testing.T) {
		s := newRecords(t, NewMockSlot())
		n, _ := s.Add(ctx, "title", "text")
		s.BeginEdit(n.ID)
		s.SetDraft("  spaced ", " out  ")

		require.True(t, s.SaveEdit(ctx))
		got, _ := s.Get(n.ID)
		assert.Equal(t, "spaced", got.Title)
		assert.Equal(t, "out", got.Text)
		_, ok := s.Draft()
		assert.False(t, ok)
	})

	t.Run("New Edit Replaces Current", func(t *testing.T) {
		s := newRecords(t, NewMockSlot())
		a, _ := s.Add(ctx, "a", "")
		b, _ := s.Add(ctx, "b", "")

		s.BeginEdit(a.ID)
		s.SetDraft("unsaved", "")
		s.BeginEdit(b.ID)

		id, ok := s.Editing()
		require.True(t, ok)
		assert.Equal(t, b.ID, id)
		d, _ := s.Draft()
		assert.Equal(t, "b", d.Title)
	})

	t.Run("Deleting Edited Note Leaves Edit Mode", func(t *testing.T) {
		s := newRecords(t, NewMockSlot())
		n, _ := s.Add(ctx, "doomed", "")
		s.BeginEdit(n.ID)

		require.True(t, s.Delete(ctx, n.ID))
		_, ok := s.Editing()
		assert.False(t, ok)
	})

	t.Run("Deleting Another Note Keeps Edit Mode", func(t *testing.T) {
		s := newRecords(t, NewMockSlot())
		a, _ := s.Add(ctx, "a", "")
		b, _ := s.Add(ctx, "b", "")
		s.BeginEdit(a.ID)

		require.True(t, s.Delete(ctx, b.ID))
		id, ok := s.Editing()
		assert.True(t, ok)
		assert.Equal(t, a.ID, id)
	})

	t.Run("Missing Note", func(t *testing.T) {
		s := newRecords(t, NewMockSlot())
		_, err := s.BeginEdit(99)
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.False(t, s.SetDraft("x", "y"))
	})

	t.Run("Freeform Has No Edit Mode", func(t *testing.T) {
		s := newFreeform(t, NewMockSlot())
		n, _ := s.At(0)
		_, err := s.BeginEdit(n.ID)
		assert.ErrorIs(t, err, core.ErrNotEditable)
	})
}
