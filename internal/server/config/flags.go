package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/linkfeed/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-k int      bcrypt cost
//	-m int      max feed page size (0 = unlimited)
//	-b string   log backend (slog|logrus)
//	-l string   log level (debug|info|warn|error)
//	-t int      shutdown timeout, seconds
//	-migrate    apply migrations on start (use -migrate=false to skip)
//
// Only the flags above are picked out of args, so subcommand names and the
// -c/-config flag do not interfere.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-k", "-m", "-b", "-l", "-t", "-migrate"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.MaxPageSize, "m", config.MaxPageSize, "max feed page size, 0 for unlimited")
	fs.StringVar(&config.LogBackend, "b", config.LogBackend, "log backend (slog|logrus)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.MigrateOnStart, "migrate", config.MigrateOnStart, "apply migrations on start")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
