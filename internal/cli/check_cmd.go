package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/medals/internal/domain/types"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App, flags *globalFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report cycles, dangling references and duplicate ids",
		Long: `Check schedules the catalog and reports what a layout would omit.
It exits non-zero when any medal cannot be scheduled, and with --strict
also when a prerequisite names an unknown medal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withService(cmd, flags, func(ctx context.Context, svc Service) error {
				d, err := svc.Diagnostics(ctx)
				if err != nil {
					return err
				}
				if flags.output != formatTable {
					if err := encode(cmd.OutOrStdout(), flags.output, d); err != nil {
						return err
					}
				} else {
					printDiagnostics(app.printer(cmd, flags), d)
				}

				switch {
				case !d.Healthy():
					return fmt.Errorf("%w: %s", ErrUnhealthy, strings.Join(d.Unscheduled, ", "))
				case strict && len(d.Dangling) > 0:
					return fmt.Errorf("%w: %d dangling prerequisite references", ErrUnhealthy, len(d.Dangling))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Also fail on dangling prerequisite references")
	return cmd
}

func printDiagnostics(p printer, d types.Diagnostics) {
	p.header("catalog check")
	fmt.Fprintf(p.w, "version   %s\n", d.CatalogVersion)
	fmt.Fprintf(p.w, "medals    %d (%d scheduled)\n", d.Medals, d.Scheduled)
	fmt.Fprintf(p.w, "edges     %d\n", d.Edges)
	fmt.Fprintf(p.w, "horizon   %s years\n\n", number(d.Horizon))

	if d.Healthy() {
		p.ok("every medal can be scheduled")
	} else {
		p.fail("unschedulable (cycle or downstream of one): " + strings.Join(d.Unscheduled, ", "))
	}
	for _, ref := range d.Dangling {
		p.warn(fmt.Sprintf("%s requires unknown medal %s", ref.MedalID, ref.MissingID))
	}
	if len(d.Duplicates) > 0 {
		p.warn("duplicate ids, first kept: " + strings.Join(d.Duplicates, ", "))
	}
}
