package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
	"github.com/walteh/wpsnip/pkg/text"
)

// NewFlattenCmd creates the command that flattens a single snippet body
func NewFlattenCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten [body]",
		Short: "Strip the tab-stops from a snippet body",
		Long:  "Flatten prints the argument free form of a snippet body. The body is read from stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body string
			if len(args) == 1 {
				body = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Errorf("reading body: %w", err)
				}
				body = strings.TrimRight(string(data), "\r\n")
			}

			fmt.Fprintln(cmd.OutOrStdout(), text.Flatten(body))
			return nil
		},
	}

	return cmd
}
