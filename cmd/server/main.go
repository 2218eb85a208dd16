package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/linkfeed/internal/server"
	"github.com/dmitrijs2005/linkfeed/internal/server/config"
	"github.com/spf13/cobra"
)

// Flags are parsed by the config package (defaults, .env, JSON, flags), so
// cobra only dispatches on the subcommand name.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:                "linkfeed-server",
		Short:              "Link sharing backend",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE:               serve,
	}

	root.AddCommand(
		&cobra.Command{
			Use:                "serve",
			Short:              "Run the HTTP server (default)",
			DisableFlagParsing: true,
			RunE:               serve,
		},
		&cobra.Command{
			Use:                "migrate",
			Short:              "Apply pending schema migrations and exit",
			DisableFlagParsing: true,
			RunE:               migrate,
		},
	)

	return root
}

func serve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.LoadConfig(args)

	logger, err := server.NewLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}

func migrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.LoadConfig(args)

	logger, err := server.NewLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}

	return server.Migrate(ctx, cfg, logger)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
