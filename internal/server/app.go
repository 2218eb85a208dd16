// Package server initializes and runs the linkfeed application server.
// It opens the store, applies migrations, wires services and runs the HTTP
// server until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/linkfeed/internal/logging"
	"github.com/dmitrijs2005/linkfeed/internal/server/auth"
	"github.com/dmitrijs2005/linkfeed/internal/server/config"
	"github.com/dmitrijs2005/linkfeed/internal/server/httpapi"
	"github.com/dmitrijs2005/linkfeed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkfeed/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// openDB is a seam for tests.
var openDB = repomanager.Open

// NewLogger builds the process logger described by c, writing to w.
func NewLogger(c *config.Config, w io.Writer) (logging.Logger, error) {
	return logging.New(c.LogBackend, c.LogLevel, w)
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if c.MigrateOnStart {
		logger.Info(ctx, "Applying migrations...")
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	creds := auth.NewCredentials(c.SecretKey, c.BcryptCost)

	us := services.NewUserService(db, rm, creds)
	ls := services.NewLinkService(db, rm)
	fs := services.NewFeedService(db, rm, c.MaxPageSize)

	gin.SetMode(gin.ReleaseMode)
	srv := httpapi.NewServer(c.EndpointAddrHTTP, logger, us, ls, fs, creds, c.ShutdownTimeout)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "closing database", "error", cerr.Error())
	}

	app.logger.Info(ctx, "App stopped")
	return err
}

// Migrate applies pending schema migrations and exits.
func Migrate(ctx context.Context, c *config.Config, logger logging.Logger) error {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	if err := repomanager.NewPostgresRepositoryManager().RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	logger.Info(ctx, "Migrations applied")
	return nil
}
