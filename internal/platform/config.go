package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/stickies/pkg/core"
)

// FileConfig is the content of stickies.yaml, after environment overrides.
type FileConfig struct {
	Adapter  string      `yaml:"adapter"`
	Layout   string      `yaml:"layout"`
	Key      string      `yaml:"key"`
	ReadOnly bool        `yaml:"read_only"`
	Ignore   []string    `yaml:"ignore"`
	Redis    RedisConfig `yaml:"redis"`
}

// RedisConfig configures the "redis" adapter.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LoadConfig reads stickies.yaml and .env from root, then applies STICKIES_*
// variables. The process environment wins over .env, which wins over the file.
// Missing files are not an error.
func LoadConfig(root string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return FileConfig{}, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	dotenv, err := godotenv.Read(filepath.Join(root, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return FileConfig{}, fmt.Errorf("failed to read .env: %w", err)
	}

	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
		v, ok := dotenv[name]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

func (c *FileConfig) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"STICKIES_ADAPTER":        &c.Adapter,
		"STICKIES_LAYOUT":         &c.Layout,
		"STICKIES_KEY":            &c.Key,
		"STICKIES_REDIS_ADDR":     &c.Redis.Addr,
		"STICKIES_REDIS_PASSWORD": &c.Redis.Password,
		"STICKIES_REDIS_PREFIX":   &c.Redis.Prefix,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	if v, ok := lookup("STICKIES_READ_ONLY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid STICKIES_READ_ONLY: %w", err)
		}
		c.ReadOnly = b
	}
	if v, ok := lookup("STICKIES_REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid STICKIES_REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	return nil
}

// Options translates the configuration into store options.
func (c FileConfig) Options() ([]Option, error) {
	layout, err := core.LayoutByName(c.Layout)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithLayout(layout), WithReadOnly(c.ReadOnly)}
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Key != "" {
		opts = append(opts, WithKey(c.Key))
	}
	if len(c.Ignore) > 0 {
		opts = append(opts, WithIgnore(c.Ignore...))
	}
	if c.Redis.Addr != "" {
		opts = append(opts, WithRedis(c.Redis.Addr, c.Redis.Password, c.Redis.DB))
	}
	if c.Redis.Prefix != "" {
		opts = append(opts, WithRedisPrefix(c.Redis.Prefix))
	}
	return opts, nil
}
