package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_http": "www.example:9000",
		"database_dsn":       "postgres://x",
		"secret_key":         "my_secret_key",
		"bcrypt_cost":        11,
		"max_page_size":      100,
		"log_backend":        "logrus",
		"log_level":          "warn",
		"migrate_on_start":   false,
		"shutdown_timeout":   "30s",
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"max_page_size": 5,
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", full})

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.Equal(t, 100, cfg.MaxPageSize)
		assert.Equal(t, "logrus", cfg.LogBackend)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.False(t, cfg.MigrateOnStart)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("partial file keeps other fields", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-c", partial})

		assert.Equal(t, 5, cfg.MaxPageSize)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.True(t, cfg.MigrateOnStart)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{SecretKey: "key", MaxPageSize: 7}
		parseJson(cfg, []string{"serve"})

		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 7, cfg.MaxPageSize)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
