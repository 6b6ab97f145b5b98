package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
	"github.com/walteh/wpsnip/pkg/extension"
)

// NewCheckCmd creates the command that runs the startup check
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the active snippet file against the settings",
		Long: `Check activates the toolbox the way an editor does on startup. When the
active snippet file does not match the chosen mode you are asked whether to
reload now. Without a terminal the --answer flag picks the choice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ext, err := opts.NewExtension()
			if err != nil {
				return errors.Errorf("creating extension: %w", err)
			}
			defer ext.Deactivate(ctx)

			if err := ext.Activate(ctx); err != nil {
				return Reported(err)
			}

			if ext.State() == extension.StateInSync {
				opts.Console.Success("Snippets are in sync")
			}
			return nil
		},
	}

	return cmd
}
