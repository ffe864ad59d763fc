package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/bookstore/internal/client/config"
	"github.com/dmitrijs2005/bookstore/internal/logging"
)

// NewRootCommand builds the bookstore command. Without a subcommand it
// starts the interactive REPL.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "bookstore",
		Short: "Command-line client for the bookstore service",
		Long: `bookstore is an interactive client for the bookstore service.

Configuration is read from defaults, a JSON file (--config), a .env file,
BOOKSTORE_* environment variables and finally command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *App) error {
				return a.Run(cmd.Context())
			})
		},
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		oneShot("login", "Sign in and store the session"),
		oneShot("logout", "Sign out and clear the stored session"),
		oneShot("whoami", "Show the stored session"),
		&cobra.Command{
			Use:   "version",
			Short: "Print the client version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "bookstore", version)
			},
		},
	)
	return root
}

// oneShot runs the REPL command of the same name once against the
// stored session. A failing command fails the process.
func oneShot(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *App) error {
				if err := a.Bootstrap(cmd.Context()); err != nil {
					return err
				}
				_, err := a.execErr(cmd.Context(), use)
				return err
			})
		},
	}
}

func withApp(cmd *cobra.Command, fn func(a *App) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, "text")
	a, err := NewApp(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn(cmd.Context(), "close app", "error", err)
		}
	}()

	return fn(a)
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}
