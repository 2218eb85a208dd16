package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envPrefix namespaces every environment variable read by parseEnv.
const envPrefix = "LINKFEED_"

// parseEnv loads dotenvPath (if it exists) into the process environment
// without overriding variables that are already set, then copies every
// LINKFEED_* variable present into config.
//
// Recognised variables:
//
//	LINKFEED_ENDPOINT_ADDR_HTTP, LINKFEED_DATABASE_DSN, LINKFEED_SECRET_KEY,
//	LINKFEED_BCRYPT_COST, LINKFEED_MAX_PAGE_SIZE, LINKFEED_LOG_BACKEND,
//	LINKFEED_LOG_LEVEL, LINKFEED_MIGRATE_ON_START, LINKFEED_SHUTDOWN_TIMEOUT
//
// Malformed numeric, boolean or duration values panic, matching parseJson.
func parseEnv(config *Config, dotenvPath string) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookupString("ENDPOINT_ADDR_HTTP", &config.EndpointAddrHTTP)
	lookupString("DATABASE_DSN", &config.DatabaseDSN)
	lookupString("SECRET_KEY", &config.SecretKey)
	lookupString("LOG_BACKEND", &config.LogBackend)
	lookupString("LOG_LEVEL", &config.LogLevel)

	if v, ok := os.LookupEnv(envPrefix + "BCRYPT_COST"); ok {
		config.BcryptCost = mustAtoi(v)
	}
	if v, ok := os.LookupEnv(envPrefix + "MAX_PAGE_SIZE"); ok {
		config.MaxPageSize = mustAtoi(v)
	}
	if v, ok := os.LookupEnv(envPrefix + "MIGRATE_ON_START"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.MigrateOnStart = b
	}
	if v, ok := os.LookupEnv(envPrefix + "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.ShutdownTimeout = d
	}
}

func lookupString(name string, dst *string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}
