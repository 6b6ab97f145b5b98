package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
	"github.com/walteh/wpsnip/pkg/bundle"
)

// NewInstallCmd creates the command that writes the bundled snippets
func NewInstallCmd(opts *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Write the bundled snippet files into the snippets directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Console.Header("installing snippets into " + opts.SnippetsDir)

			if err := bundle.Install(cmd.Context(), opts.SnippetsDir, force); err != nil {
				return errors.Errorf("installing snippets: %w", err)
			}

			opts.Console.LogNewline()
			opts.Console.Success("Snippets installed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing snippet files")

	return cmd
}
