package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
	"github.com/walteh/wpsnip/pkg/completion"
	"github.com/walteh/wpsnip/pkg/snippet"
)

// NewCompleteCmd creates the command that lists completion candidates
func NewCompleteCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		file   string
		query  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "List snippet completions for a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			files := opts.Files()
			catalog, err := snippet.LoadCatalog(ctx, files.Path(snippet.FullSourceFile))
			if err != nil {
				return errors.Errorf("loading snippets: %w", err)
			}

			supplier := completion.NewSupplier(catalog, opts.Settings)
			items := supplier.Provide(ctx, completion.Request{Path: file, Query: query})

			if asJSON {
				if items == nil {
					items = []completion.Item{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				if err := enc.Encode(items); err != nil {
					return errors.Errorf("encoding completions: %w", err)
				}
				return nil
			}

			if len(items) == 0 {
				opts.Console.Info("No completions")
				return nil
			}

			data := pterm.TableData{{"label", "detail", "insert"}}
			for _, item := range items {
				data = append(data, []string{item.Label, item.Detail, item.InsertText})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering completions: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "document the completions are for")
	cmd.Flags().StringVarP(&query, "query", "q", "", "word being typed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print candidates as JSON")

	return cmd
}
