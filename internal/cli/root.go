// Package cli implements the gosumemory-helper commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bestfast/gosumemory-helper/internal/config"
	"github.com/spf13/cobra"
)

// app carries configuration resolved from the environment and the
// persistent flags of the root command.
type app struct {
	cfg    *config.Configuration
	logger *slog.Logger

	feedURL  string
	dbPath   string
	logLevel string
	format   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gosumemory-helper",
		Short:         "Typed client for the gosumemory osu! websocket feed",
		Long:          "Reads gosumemory state documents, validates them against the feed schema and prints, relays or records them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.feedURL, "url", "u", "", "Feed URL (default: $GOSU_FEED_URL or ws://localhost:24050/ws)")
	root.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "Results database path (default: $GOSU_STORE_DB or ~/.gosumemory-helper/results.db)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (default: $GOSU_LOG_LEVEL or info)")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "json", "Output format: json or text")

	root.AddCommand(
		newParseCmd(a),
		newWatchCmd(a),
		newRelayCmd(a),
		newHistoryCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.feedURL != "" {
		cfg.Feed.URL = a.feedURL
	}
	if a.dbPath != "" {
		cfg.Store.Path = a.dbPath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.format != "json" && a.format != "text" {
		return fmt.Errorf("unknown format %q", a.format)
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
