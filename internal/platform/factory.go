package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/stickies/pkg/adapters/fs"
	"github.com/aretw0/stickies/pkg/adapters/memory"
	"github.com/aretw0/stickies/pkg/adapters/redis"
	"github.com/aretw0/stickies/pkg/core"
)

// New opens the slot for uri and returns a store already loaded from it.
// The uri is adapter-specific: the root directory for "fs", the server
// address for "redis", ignored for "memory".
//
//	store, err := stickies.New("./project", stickies.WithLayout(core.Freeform))
func New(uri string, opts ...Option) (*core.Store, error) {
	o := parseOptions(opts)

	slot, err := initSlot(uri, o)
	if err != nil {
		return nil, err
	}

	key, _ := o.config["key"].(string)
	onWriteErr, _ := o.config["write_error_handler"].(func(error))

	store := core.NewStore(core.Config{
		Layout:            o.layout,
		Slot:              slot,
		Confirmer:         o.confirmer,
		Logger:            o.logger,
		Key:               key,
		WriteErrorHandler: onWriteErr,
	})
	store.Load(context.Background())

	if o.logger != nil {
		o.logger.Debug("store opened", "adapter", o.adapter, "layout", o.layout.Name, "key", store.Key(), "notes", store.Len())
	}
	return store, nil
}

// Init creates and initializes the slot selected by the options.
func Init(uri string, opts ...Option) (core.Slot, error) {
	return initSlot(uri, parseOptions(opts))
}

func initSlot(uri string, o *options) (core.Slot, error) {
	// 1. Check for injected slot
	if o.slot != nil {
		return o.slot, nil
	}

	// 2. Initialize based on Adapter
	var slot core.Slot
	switch o.adapter {
	case "fs":
		slot = newFSSlot(uri, o)
	case "memory":
		slot = memory.NewSlot()
	case "redis":
		slot = newRedisSlot(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	// 3. Run Initialization
	if in, ok := slot.(core.Initializer); ok {
		if err := in.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}
	return slot, nil
}

func newFSSlot(root string, o *options) *fs.Slot {
	systemDir, _ := o.config["system_dir"].(string)
	if systemDir == "" {
		systemDir = DefaultSystemDir
	}
	if root == "" {
		root = "."
	}
	readOnly, _ := o.config["read_only"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	ignore, _ := o.config["ignore"].([]string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewSlot(fs.Config{
		Path:         filepath.Join(root, systemDir),
		ReadOnly:     readOnly,
		MustExist:    mustExist,
		Logger:       o.logger,
		Ignore:       ignore,
		ErrorHandler: errorHandler,
	})
}

func newRedisSlot(uri string, o *options) *redis.Slot {
	addr, _ := o.config["redis_addr"].(string)
	if addr == "" {
		addr = uri
	}
	password, _ := o.config["redis_password"].(string)
	db, _ := o.config["redis_db"].(int)
	prefix, _ := o.config["redis_prefix"].(string)

	return redis.NewSlot(redis.Config{
		Addr:     addr,
		Password: password,
		DB:       db,
		Prefix:   prefix,
		Logger:   o.logger,
	})
}
