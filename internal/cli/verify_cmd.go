package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/types"
	"github.com/spf13/cobra"
)

func newVerifyCmd(app *App, flags *globalFlags) *cobra.Command {
	var baseURL string
	var presets []string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Fetch layouts from a running medald and check their consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			client := app.httpClient()
			base := strings.TrimRight(baseURL, "/")
			p := app.printer(cmd, flags)

			var diag types.Diagnostics
			if err := fetchJSON(ctx, client, base+"/diagnostics", &diag); err != nil {
				return err
			}
			if len(presets) == 0 {
				var infos []layout.PresetInfo
				if err := fetchJSON(ctx, client, base+"/presets", &infos); err != nil {
					return err
				}
				for _, info := range infos {
					presets = append(presets, info.ID)
				}
			}

			p.header("verify " + base)
			var failures []error
			for _, id := range presets {
				var out types.Layout
				if err := fetchJSON(ctx, client, base+"/layout?preset="+url.QueryEscape(id), &out); err != nil {
					return err
				}
				err := errors.Join(
					layout.Verify(out.Result),
					matchDiagnostics(out, diag),
				)
				if err != nil {
					p.fail(fmt.Sprintf("%s: %v", id, err))
					failures = append(failures, fmt.Errorf("%s: %w", id, err))
					continue
				}
				p.ok(fmt.Sprintf("%s: %d medals, %d connections", id, len(out.Nodes), len(out.Connections)))
			}

			if len(failures) > 0 {
				return fmt.Errorf("%w: %w", ErrVerifyFailed, errors.Join(failures...))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:9080", "Base URL of the medald service")
	cmd.Flags().StringSliceVar(&presets, "preset", nil, "Presets to verify (default: all listed by the service)")

	return cmd
}

// matchDiagnostics checks a layout against the catalog diagnostics served
// alongside it.
func matchDiagnostics(out types.Layout, d types.Diagnostics) error {
	if out.CatalogVersion != d.CatalogVersion {
		// The catalog changed between requests; counts cannot be compared.
		return nil
	}
	var errs []error
	if len(out.Nodes) != d.Scheduled {
		errs = append(errs, fmt.Errorf("%w: %d nodes, %d scheduled medals", layout.ErrInconsistentLayout, len(out.Nodes), d.Scheduled))
	}
	if !slices.Equal(out.Meta.Unscheduled, d.Unscheduled) {
		errs = append(errs, fmt.Errorf("%w: unscheduled %v, diagnostics %v", layout.ErrInconsistentLayout, out.Meta.Unscheduled, d.Unscheduled))
	}
	return errors.Join(errs...)
}

func fetchJSON(ctx context.Context, client *http.Client, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d: %s", target, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", target, err)
	}
	return nil
}
