package cli

import (
	"fmt"

	"github.com/Bestfast/gosumemory-helper/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit     int
		beatmapID int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded results",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.NewSQLiteStore(a.cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			results, err := s.List(cmd.Context(), store.ListParams{
				BeatmapID: beatmapID,
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			return writeResults(cmd.OutOrStdout(), a.format, results)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Max results (0 for all)")
	cmd.Flags().IntVarP(&beatmapID, "beatmap", "b", 0, "Only results for this beatmap id")

	return cmd
}
