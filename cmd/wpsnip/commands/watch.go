package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
)

// NewWatchCmd creates the command that follows settings changes
func NewWatchCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Switch snippet files whenever the snippet mode setting changes",
		Long: `Watch activates the toolbox and then follows the settings file. Every save
that changes wpSnippets.snippetMode switches the active snippet file and
reloads the editor. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ext, err := opts.NewExtension()
			if err != nil {
				return errors.Errorf("creating extension: %w", err)
			}
			defer ext.Deactivate(ctx)

			// a failed startup check is shown and watching continues
			_ = ext.Activate(ctx)

			opts.Console.Infof("Watching %s", opts.Settings.Path())
			if err := opts.Settings.Watch(ctx, nil); err != nil {
				return errors.Errorf("watching settings: %w", err)
			}
			return nil
		},
	}

	return cmd
}
