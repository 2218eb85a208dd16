package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{
			"serve",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-k", "12", "-m", "25",
			"-b", "logrus", "-l", "debug", "-t", "3", "-migrate=false",
		}, expected: &Config{
			EndpointAddrHTTP: "127.0.0.1:9090",
			DatabaseDSN:      "db",
			SecretKey:        "secret",
			BcryptCost:       12,
			MaxPageSize:      25,
			LogBackend:       "logrus",
			LogLevel:         "debug",
			MigrateOnStart:   false,
			ShutdownTimeout:  3 * time.Second,
		}},
		{name: "foreign flags ignored", args: []string{"-c", "cfg.json", "-x", "1"}, expected: &Config{}},
		{name: "bad int panics", args: []string{"-k", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
