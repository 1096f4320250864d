package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Bestfast/gosumemory-helper/internal/message"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a saved feed document",
		Long:  "Parse one gosumemory JSON document from a file, or stdin when the file is omitted or '-', and print it.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open document: %w", err)
				}
				defer f.Close()
				r = f
			}

			doc, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			state, err := message.Parse(doc)
			if err != nil {
				return err
			}

			if legacy {
				return writeOsuMap(cmd.OutOrStdout(), a.format, message.NewOsuMap(state))
			}
			return writeState(cmd.OutOrStdout(), a.format, state)
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy", false, "Print the reduced beatmap view only")

	return cmd
}
