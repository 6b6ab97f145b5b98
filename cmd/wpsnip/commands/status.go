package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the chosen and the active snippet mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			resolver, err := opts.NewResolver()
			if err != nil {
				return errors.Errorf("creating resolver: %w", err)
			}

			report, err := resolver.Status(ctx)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			settings := opts.Settings.Get()
			active := report.Current.String()
			if !report.ActiveExists {
				active += " (missing)"
			}

			table, err := pterm.DefaultTable.WithData(pterm.TableData{
				{"setting", "value"},
				{"settings file", opts.Settings.Path()},
				{"active file", report.ActivePath},
				{"chosen mode", report.Desired.String()},
				{"active mode", active},
				{"remove arguments", fmt.Sprint(settings.RemoveArguments)},
				{"file patterns", fmt.Sprint(settings.FilePatterns)},
			}).WithHasHeader().Srender()
			if err != nil {
				return errors.Errorf("rendering status: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)

			if report.InSync() {
				opts.Console.Success("Snippets are in sync")
			} else {
				opts.Console.Warningf("Snippets are out of sync, run `wpsnip use %s` to fix this", strings.ToLower(report.Desired.String()))
			}
			return nil
		},
	}

	return cmd
}
