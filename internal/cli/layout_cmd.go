package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/types"
	"github.com/spf13/cobra"
)

func newLayoutCmd(app *App, flags *globalFlags) *cobra.Command {
	var preset string
	var opts layout.Options

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the timeline layout of a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withService(cmd, flags, func(ctx context.Context, svc Service) error {
				out, err := svc.Layout(ctx, preset, opts)
				if err != nil {
					return err
				}
				if flags.output != formatTable {
					return encode(cmd.OutOrStdout(), flags.output, out)
				}
				printLayout(app.printer(cmd, flags), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Layout preset id (unknown ids use the default preset)")
	cmd.Flags().Float64Var(&opts.YearWidth, "year-width", 0, "Horizontal units per year")
	cmd.Flags().Float64Var(&opts.LaneHeight, "lane-height", 0, "Vertical distance between lanes")
	cmd.Flags().Float64Var(&opts.RowHeight, "row-height", 0, "Vertical distance between medals sharing a year")
	cmd.Flags().Float64Var(&opts.Radius, "radius", 0, "Node radius")

	return cmd
}

func printLayout(p printer, out types.Layout) {
	p.header(fmt.Sprintf("%s layout", out.Preset))

	rows := make([][]string, 0, len(out.Nodes))
	for _, n := range out.Nodes {
		rows = append(rows, []string{
			n.MedalID,
			n.Category,
			n.Label,
			number(n.EarliestFinish),
			number(n.Position.X),
			number(n.Position.Y),
		})
	}
	p.table([]string{"ID", "TYPE", "LABEL", "YEAR", "X", "Y"}, rows)

	fmt.Fprintf(p.w, "\n%d medals, %d connections, %d lanes\n",
		len(out.Nodes), len(out.Connections), len(out.Meta.Lanes))
	if len(out.Meta.Unscheduled) > 0 {
		p.warn("omitted (prerequisite cycle): " + strings.Join(out.Meta.Unscheduled, ", "))
	}
	for _, d := range out.Meta.Dangling {
		p.warn(fmt.Sprintf("%s requires unknown medal %s", d.MedalID, d.MissingID))
	}
}
