// Package lifecycle exposes store changes as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/stickies/pkg/core"
)

type storeSource struct {
	store  *core.Store
	buffer int
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting every change of store.
// Subscription starts with Start; events before that are not seen.
func NewSource(store *core.Store, buffer int) lifecycle.Source {
	return &storeSource{
		store:  store,
		buffer: buffer,
		out:    make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	events := s.store.Events(ctx, s.buffer)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
