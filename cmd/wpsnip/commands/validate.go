package commands

import (
	"context"
	"sync"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
	"github.com/walteh/wpsnip/pkg/snippet"
	"github.com/walteh/wpsnip/pkg/status"
)

// fileCheck is the outcome of validating one snippet file
type fileCheck struct {
	name    string
	entries int
	mode    snippet.Mode
	err     error
}

// NewValidateCmd creates the command that checks the shape of the snippet files
func NewValidateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every snippet file parses and has the expected mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			checks, err := validateFiles(ctx, opts.Files())
			if err != nil {
				return err
			}

			failed := 0
			for _, c := range checks {
				if c.err != nil {
					failed++
					opts.Console.Errorf("%s: %v", c.name, c.err)
					continue
				}
				opts.Console.Successf("%s: %d snippets (%s)", c.name, c.entries, c.mode)
			}

			if failed > 0 {
				return Reported(errors.Errorf("%d of %d snippet files are invalid", failed, len(checks)))
			}
			return nil
		},
	}

	return cmd
}

// validateFiles checks the three snippet files in parallel. Per file problems
// are returned in the checks; the error is only set when ctx is cancelled.
func validateFiles(ctx context.Context, files status.FileManager) ([]fileCheck, error) {
	names := []string{snippet.FullSourceFile, snippet.FlatSourceFile, snippet.ActiveFile}
	checks := make([]fileCheck, len(names))

	var mu sync.Mutex
	counts := map[string]int{}

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := validateFile(gctx, files, name)
			checks[i] = c
			if c.err == nil {
				mu.Lock()
				counts[name] = c.entries
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Errorf("validating snippet files: %w", err)
	}

	full, fullOK := counts[snippet.FullSourceFile]
	flat, flatOK := counts[snippet.FlatSourceFile]
	if fullOK && flatOK && full != flat {
		checks[1].err = errors.Errorf("has %d snippets but %s has %d", flat, snippet.FullSourceFile, full)
	}

	return checks, nil
}

func validateFile(ctx context.Context, files status.FileManager, name string) fileCheck {
	c := fileCheck{name: name}

	data, err := files.ReadFile(ctx, name)
	if err != nil {
		c.err = err
		return c
	}

	catalog, err := snippet.ParseCatalog(ctx, data)
	if err != nil {
		c.err = err
		return c
	}
	c.entries = catalog.Len()
	c.mode = snippet.InferMode(data)

	switch name {
	case snippet.FullSourceFile:
		if c.mode != snippet.Full {
			c.err = errors.Errorf("contains no %q marker so it would be read as Flat", snippet.FullModeMarker)
		}
	case snippet.FlatSourceFile:
		if c.mode != snippet.Flat {
			c.err = errors.Errorf("contains a %q marker so it would be read as Full", snippet.FullModeMarker)
		}
	}
	return c
}
