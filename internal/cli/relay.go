package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Bestfast/gosumemory-helper/internal/feed"
	"github.com/Bestfast/gosumemory-helper/internal/message"
	"github.com/Bestfast/gosumemory-helper/internal/relay"
	"github.com/Bestfast/gosumemory-helper/internal/store"
	"github.com/spf13/cobra"
)

func newRelayCmd(a *app) *cobra.Command {
	var (
		addr   string
		record bool
	)

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Serve parsed feed states to overlays",
		Long:  "Connect to the feed and serve each parsed state on /ws, the latest one on /json and its reduced view on /map.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Relay.Addr
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			hub := relay.NewHub(a.logger)
			client := feed.NewClient(a.cfg.Feed.URL, feed.Options{
				ReconnectDelay: a.cfg.Feed.ReconnectDelay,
				ReadLimit:      a.cfg.Feed.ReadLimit,
				Logger:         a.logger,
			})
			client.OnState(hub.Publish)

			if record {
				s, err := store.NewSQLiteStore(a.cfg.Store.Path)
				if err != nil {
					return fmt.Errorf("open store: %w", err)
				}
				defer s.Close()

				rec := store.NewRecorder(s, a.logger)
				client.OnState(func(state *message.GosuMemoryState) {
					if _, err := rec.Observe(ctx, state); err != nil {
						a.logger.Error("record result", slog.Any("err", err))
					}
				})
			}

			go func() {
				if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					a.logger.Error("feed client stopped", slog.Any("err", err))
				}
			}()

			err := hub.ListenAndServe(ctx, addr)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $GOSU_RELAY_ADDR or :7777)")
	cmd.Flags().BoolVar(&record, "record", false, "Store finished plays in the results database")

	return cmd
}
