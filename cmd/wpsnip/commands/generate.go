package commands

import (
	"bytes"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
	"github.com/walteh/wpsnip/pkg/log"
	"github.com/walteh/wpsnip/pkg/snippet"
)

// NewGenerateCmd creates the command that rebuilds the Flat source
func NewGenerateCmd(opts *opts.RootOpts) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rebuild snippets-flat.json from snippets-full.json",
		Long: `Generate flattens every body in snippets-full.json and writes the result to
snippets-flat.json. With --check nothing is written and the command fails
when the Flat source is out of date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			files := opts.Files()

			full, err := snippet.LoadCatalog(ctx, files.Path(snippet.FullSourceFile))
			if err != nil {
				return errors.Errorf("loading full snippets: %w", err)
			}

			out, err := full.Flattened().Encode()
			if err != nil {
				return errors.Errorf("encoding flat snippets: %w", err)
			}

			if check {
				current, err := files.ReadFile(ctx, snippet.FlatSourceFile)
				if err != nil {
					return errors.Errorf("reading flat snippets: %w", err)
				}
				if !bytes.Equal(current, out) {
					return errors.Errorf("%s is out of date, run `wpsnip generate`", snippet.FlatSourceFile)
				}
				opts.Console.Successf("%s is up to date", snippet.FlatSourceFile)
				return nil
			}

			if err := files.WriteFileAtomic(ctx, snippet.FlatSourceFile, out); err != nil {
				return errors.Errorf("writing flat snippets: %w", err)
			}

			opts.Console.LogFileOperation(ctx, log.FileOperation{
				Path:   snippet.FlatSourceFile,
				Mode:   snippet.Flat.String(),
				Status: "generated",
			})
			opts.Console.Successf("Flattened %d snippets", full.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "fail if the flat source is out of date instead of writing it")

	return cmd
}
