// Package redis implements core.Slot on a Redis server, so several processes
// can share one note list. Every write is announced on a pub/sub channel
// which backs Watch.
package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aretw0/stickies/pkg/core"
)

// DefaultPrefix namespaces every key the slot touches.
const DefaultPrefix = "stickies:"

// Config holds the configuration for the Redis slot.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	// Client overrides Addr/Password/DB with an existing connection.
	Client goredis.UniversalClient
	Logger *slog.Logger
}

// Slot implements core.WatchableSlot on Redis strings.
type Slot struct {
	client   goredis.UniversalClient
	prefix   string
	instance string
	logger   *slog.Logger
	owned    bool

	mu       sync.Mutex
	watchers int
	lastPub  *time.Time
}

// NewSlot creates a Redis slot. It does not connect until used.
func NewSlot(cfg Config) *Slot {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	client := cfg.Client
	owned := false
	if client == nil {
		addr := cfg.Addr
		if addr == "" {
			addr = "localhost:6379"
		}
		client = goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		owned = true
	}

	return &Slot{
		client:   client,
		prefix:   prefix,
		instance: uuid.NewString(),
		logger:   logger,
		owned:    owned,
	}
}

// Key returns the Redis key holding the slot value.
func (s *Slot) Key(key string) string {
	return s.prefix + key
}

// Channel returns the pub/sub channel announcing writes to key.
func (s *Slot) Channel(key string) string {
	return s.prefix + key + ":changed"
}

// Initialize checks that the server is reachable.
func (s *Slot) Initialize(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

// Read implements core.Slot.
func (s *Slot) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, core.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

// Write stores data and announces the change in one transaction.
func (s *Slot) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, s.Key(key), data, 0)
		pipe.Publish(ctx, s.Channel(key), s.instance)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}

	s.mu.Lock()
	now := time.Now()
	s.lastPub = &now
	s.mu.Unlock()
	return nil
}

// Watch reports writes to key made by other slot instances.
func (s *Slot) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	sub := s.client.Subscribe(ctx, s.Channel(key))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", s.Channel(key), err)
	}

	out := make(chan core.Event)
	s.setWatching(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer s.setWatching(-1)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-messages:
				if !ok {
					return nil
				}
				if msg.Payload == s.instance {
					continue
				}
				s.logger.Debug("slot changed by another instance", "key", key, "instance", msg.Payload)
				select {
				case out <- core.Event{Type: core.EventModify, Key: key, Timestamp: time.Now().Unix()}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("redis watcher error", "key", key, "error", err)
	}))

	return out, nil
}

// Close releases the connection if the slot opened it.
func (s *Slot) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func (s *Slot) setWatching(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers += delta
}

// SlotState exposes internal state for observability.
type SlotState struct {
	Prefix      string     `json:"prefix"`
	Instance    string     `json:"instance"`
	Watchers    int        `json:"watchers"`
	LastPublish *time.Time `json:"last_publish,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SlotState{
		Prefix:      s.prefix,
		Instance:    s.instance,
		Watchers:    s.watchers,
		LastPublish: s.lastPub,
	}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "redis-slot"
}

var _ core.WatchableSlot = (*Slot)(nil)
var _ core.Initializer = (*Slot)(nil)
var _ introspection.Introspectable = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)
