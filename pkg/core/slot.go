package core

import "context"

// Slot is a single named storage location holding the serialized note list.
// Adhering to this interface keeps the store independent of the underlying
// storage mechanism (file, Redis, memory).
type Slot interface {
	// Read returns the raw value stored under key, or ErrSlotEmpty.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, data []byte) error
}

// WatchableSlot is a Slot that can report writes made by someone else,
// such as another process sharing the same file.
type WatchableSlot interface {
	Slot
	// Watch emits an event whenever key is changed externally.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Initializer is implemented by slots that need setup before first use
// (create directories, ping a server).
type Initializer interface {
	Initialize(ctx context.Context) error
}
