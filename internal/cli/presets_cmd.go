package cli

import (
	"github.com/spf13/cobra"
)

func newPresetsCmd(app *App, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List layout presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.NewService == nil {
				return errUsage
			}
			// Listing presets does not need a catalog.
			presets := app.NewService(flags.catalog).Presets()
			if flags.output != formatTable {
				return encode(cmd.OutOrStdout(), flags.output, presets)
			}
			rows := make([][]string, 0, len(presets))
			for _, pr := range presets {
				rows = append(rows, []string{pr.ID, pr.Label, pr.Description})
			}
			app.printer(cmd, flags).table([]string{"ID", "LABEL", "DESCRIPTION"}, rows)
			return nil
		},
	}
}
