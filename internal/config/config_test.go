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

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from file", func(t *testing.T) {
		// Given: a config file with every field set
		path := writeConfig(t, `
log-level: debug
mode: http
http-port: "8080"
storage: redis
redis:
  host: cache
  port: "6380"
`)

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the values come from the file
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, ModeHTTP, conf.Mode)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Applies defaults", func(t *testing.T) {
		// Given: an almost empty config file
		path := writeConfig(t, "log-level: info\n")

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the defaults are used
		assert.Equal(t, ModeCLI, conf.Mode)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		// Given: a config file and an environment variable for the mode
		path := writeConfig(t, "mode: cli\n")
		t.Setenv("MODE", ModeHTTP)

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the environment wins
		assert.Equal(t, ModeHTTP, conf.Mode)
	})

	t.Run("Error on missing file", func(t *testing.T) {
		// When: a missing file is loaded
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: an error is returned and MustLoad panics
		require.Error(t, err)
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
