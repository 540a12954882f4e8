package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mural.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads a full configuration", func(t *testing.T) {
		path := writeConfig(t, `
instance: studio
redis_url: redis://redis:6379/2
http_addr: ":9090"
canvas:
  width: 128
  height: 96
  palette:
    - "#ffffff"
    - "#000000"
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "studio", cfg.Instance)
		assert.Equal(t, "redis://redis:6379/2", cfg.RedisURL)
		assert.Equal(t, ":9090", cfg.HTTPAddr)
		require.NotNil(t, cfg.Canvas)
		assert.Equal(t, 128, cfg.Canvas.Width)
		assert.Equal(t, 96, cfg.Canvas.Height)
		assert.Len(t, cfg.Canvas.Palette, 2)
	})

	t.Run("applies defaults for missing fields", func(t *testing.T) {
		path := writeConfig(t, `instance: studio`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultRedisURL, cfg.RedisURL)
		assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
		assert.Nil(t, cfg.Canvas)
	})

	t.Run("environment variables override the file", func(t *testing.T) {
		t.Setenv("REDIS_URL", "redis://env-host:6379")
		t.Setenv("MURAL_INSTANCE_NAME", "env-instance")

		path := writeConfig(t, `
instance: studio
redis_url: redis://file-host:6379
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-instance", cfg.Instance)
		assert.Equal(t, "redis://env-host:6379", cfg.RedisURL)
	})

	t.Run("fails on missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})

	t.Run("fails on malformed YAML", func(t *testing.T) {
		path := writeConfig(t, "instance: [unclosed")
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("rejects negative canvas dimensions", func(t *testing.T) {
		path := writeConfig(t, `
canvas:
  width: -1
  height: 10
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects width without height", func(t *testing.T) {
		path := writeConfig(t, `
canvas:
  width: 32
`)
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "set together")
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultInstance, cfg.Instance)
	assert.Equal(t, DefaultRedisURL, cfg.RedisURL)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.NoError(t, cfg.Validate())
}
