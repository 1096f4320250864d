package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Bestfast/gosumemory-helper/internal/feed"
	"github.com/Bestfast/gosumemory-helper/internal/message"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		once   bool
		legacy bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print feed updates as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd)
			defer cancel()

			out := cmd.OutOrStdout()
			show := func(s *message.GosuMemoryState) error {
				if legacy {
					return writeOsuMap(out, a.format, message.NewOsuMap(s))
				}
				return writeState(out, a.format, s)
			}

			if once {
				state, err := feed.Once(ctx, a.cfg.Feed.URL, a.cfg.Feed.ReadLimit)
				if err != nil {
					return err
				}
				return show(state)
			}

			client := feed.NewClient(a.cfg.Feed.URL, feed.Options{
				ReconnectDelay: a.cfg.Feed.ReconnectDelay,
				ReadLimit:      a.cfg.Feed.ReadLimit,
				Logger:         a.logger,
			})
			client.OnState(func(s *message.GosuMemoryState) {
				if err := show(s); err != nil {
					a.logger.Error("print state", slog.Any("err", err))
				}
			})

			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Read a single update and exit")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Print the reduced beatmap view only")

	return cmd
}
