// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/cmd/wpsnip/commands"
	"github.com/walteh/wpsnip/cmd/wpsnip/opts"
	"github.com/walteh/wpsnip/pkg/config"
	"github.com/walteh/wpsnip/pkg/host"
	"github.com/walteh/wpsnip/pkg/log"
)

// rootFlags holds the persistent flags shared by every command
type rootFlags struct {
	configFile    string
	snippetsDir   string
	debug         bool
	answer        string
	reloadCommand string
}

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	ropts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "wpsnip",
		Short:         "WordPress snippet toolbox",
		Long:          "wpsnip keeps the active WordPress snippet file in sync with the chosen snippet mode and serves completions from the snippet catalog.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), flags.debug)

			// console messages are mirrored to the structured log only when debugging
			mirror := zerolog.Nop()
			if flags.debug {
				mirror = zerolog.Ctx(ctx).With().Str("component", "console").Logger()
			}
			console := log.New(cmd.OutOrStdout(), mirror)
			ctx = log.NewContext(ctx, console)
			cmd.SetContext(ctx)

			return fillRootOpts(ctx, flags, console, ropts)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewUseCmd(ropts),
		commands.NewCheckCmd(ropts),
		commands.NewStatusCmd(ropts),
		commands.NewCompleteCmd(ropts),
		commands.NewFlattenCmd(ropts),
		commands.NewGenerateCmd(ropts),
		commands.NewInstallCmd(ropts),
		commands.NewValidateCmd(ropts),
		commands.NewWatchCmd(ropts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", ".wpsnip.json", "settings file path (.json, .yaml or .hcl)")
	cmd.PersistentFlags().StringVarP(&flags.snippetsDir, "snippets-dir", "s", "snippets", "directory holding the snippet files")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.answer, "answer", "", "answer to use for prompts when stdin is not a terminal")
	cmd.PersistentFlags().StringVar(&flags.reloadCommand, "reload-cmd", "", "shell command that reloads the editor")
}

// setupLogging configures zerolog based on flags and returns a context
// carrying the logger
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: os.Getenv("NO_COLOR") != ""}).
		Level(level).
		With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}

// fillRootOpts loads the settings and builds the host
func fillRootOpts(ctx context.Context, flags *rootFlags, console *log.Logger, ropts *opts.RootOpts) error {
	store, err := config.Load(ctx, flags.configFile)
	if err != nil {
		return errors.Errorf("loading settings: %w", err)
	}

	ropts.Settings = store
	ropts.SnippetsDir = flags.snippetsDir
	ropts.Console = console
	if ropts.Host == nil {
		ropts.Host = host.NewTerminal(host.TerminalOptions{
			Logger:        console,
			Answer:        flags.answer,
			ReloadCommand: flags.reloadCommand,
		})
	}
	return nil
}
