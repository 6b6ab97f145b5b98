package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
)

// NewUseCmd creates the command that switches snippet modes
func NewUseCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "use {full|flat}",
		Short:     "Switch the active snippet file to Full or Flat snippets",
		ValidArgs: []string{"full", "flat"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Long: `Use persists the chosen snippet mode and replaces the active snippet file
with the matching source. It will:
1. Save the mode to the settings file
2. Copy snippets-full.json or snippets-flat.json over snippets.json
3. Ask the editor to reload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ext, err := opts.NewExtension()
			if err != nil {
				return errors.Errorf("creating extension: %w", err)
			}

			switch strings.ToLower(args[0]) {
			case "flat":
				err = ext.UseFlatSnippets(ctx)
			default:
				err = ext.UseFullSnippets(ctx)
			}
			return Reported(err)
		},
	}

	return cmd
}
