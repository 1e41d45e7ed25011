package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Missing Files Yield Zero Config", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, FileConfig{}, cfg)
	})

	t.Run("File Then Dotenv Then Environment", func(t *testing.T) {
		root := t.TempDir()
		yamlContent := `
adapter: redis
layout: freeform
ignore: ["*.bak"]
redis:
  addr: file:6379
  db: 1
  prefix: "team:"
`
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte(yamlContent), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("STICKIES_REDIS_ADDR=dotenv:6379\nSTICKIES_REDIS_DB=2\nSTICKIES_KEY=board\n"), 0644))
		t.Setenv("STICKIES_REDIS_DB", "3")

		cfg, err := LoadConfig(root)
		require.NoError(t, err)
		assert.Equal(t, "redis", cfg.Adapter)
		assert.Equal(t, "freeform", cfg.Layout)
		assert.Equal(t, "board", cfg.Key)
		assert.Equal(t, []string{"*.bak"}, cfg.Ignore)
		assert.Equal(t, "dotenv:6379", cfg.Redis.Addr)
		assert.Equal(t, 3, cfg.Redis.DB)
		assert.Equal(t, "team:", cfg.Redis.Prefix)
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte("adapter: [unclosed"), 0644))
		_, err := LoadConfig(root)
		assert.Error(t, err)
	})

	t.Run("Invalid Env Value", func(t *testing.T) {
		t.Setenv("STICKIES_READ_ONLY", "maybe")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "STICKIES_READ_ONLY")
	})
}

func TestFileConfig_Options(t *testing.T) {
	opts, err := FileConfig{Layout: "freeform", Adapter: "memory", Key: "k"}.Options()
	require.NoError(t, err)

	o := parseOptions(opts)
	assert.Equal(t, "memory", o.adapter)
	assert.Equal(t, "freeform", o.layout.Name)
	assert.Equal(t, "k", o.config["key"])

	_, err = FileConfig{Layout: "grid"}.Options()
	assert.Error(t, err)
}
