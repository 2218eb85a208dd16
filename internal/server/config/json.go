package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/linkfeed/internal/flagx"
	"github.com/dmitrijs2005/linkfeed/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Pointer fields distinguish "absent" from a zero value, so a partial file
// only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	BcryptCost       *int            `json:"bcrypt_cost"`
	MaxPageSize      *int            `json:"max_page_size"`
	LogBackend       *string         `json:"log_backend"`
	LogLevel         *string         `json:"log_level"`
	MigrateOnStart   *bool           `json:"migrate_on_start"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays config with the JSON file named by -c/-config in args.
// Without the flag nothing is loaded. An unreadable file or invalid JSON panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.MaxPageSize, c.MaxPageSize)
	setIf(&config.LogBackend, c.LogBackend)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.MigrateOnStart, c.MigrateOnStart)
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
