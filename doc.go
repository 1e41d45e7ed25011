// Package stickies is the Composition Root for the sticky notes store.
//
// It connects the note domain (pkg/core) with the persistence adapters
// (pkg/adapters) the same way regardless of where the notes live.
//
// Philosophy:
//
// A board of sticky notes is an ordered list mirrored to one key-value slot.
// Every mutation rewrites the whole list, reads fall back to a sane default
// when the slot is empty or damaged, and nothing is ever surfaced to the user
// as an error except the question "Delete this note?".
//
// Features:
//
//   - **Two Layouts**: titled records (newest first, edit mode, confirmed deletes)
//     and freeform text notes (append, no confirmation), one Store for both.
//   - **Stable IDs**: monotonic IDs, including for freeform notes whose slot only keeps text.
//   - **Pluggable Slots**: a JSON file (default), Redis, or memory via `core.Slot`.
//   - **Live Reload**: `Store.Follow` picks up writes from other processes.
//   - **Change Feed**: `Store.Subscribe` / `Store.Events` for re-rendering.
//
// Usage:
//
//	store, err := stickies.New("./project",
//		stickies.WithConfirmer(prompt),
//		stickies.WithLogger(logger),
//	)
//
//	note, ok := store.Add(ctx, "Groceries", "milk, eggs")
package stickies
