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

package host

import (
	"context"
	"os"
	"os/exec"
	"slices"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/pkg/log"
)

// TerminalOptions configures a Terminal host
type TerminalOptions struct {
	// Logger prints messages
	Logger *log.Logger
	// Answer is returned by Prompt when stdin is not a terminal
	Answer string
	// ReloadCommand runs through sh -c on Reload; empty only prints a hint
	ReloadCommand string
	// Interactive overrides terminal detection when set
	Interactive *bool
}

// 🖥️ Terminal hosts the toolbox in a command line session
type Terminal struct {
	logger        *log.Logger
	answer        string
	reloadCommand string
	interactive   bool
}

var _ Host = (*Terminal)(nil)

// 🏭 NewTerminal creates a terminal host
func NewTerminal(opts TerminalOptions) *Terminal {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if opts.Interactive != nil {
		interactive = *opts.Interactive
	}
	return &Terminal{
		logger:        opts.Logger,
		answer:        opts.Answer,
		reloadCommand: opts.ReloadCommand,
		interactive:   interactive,
	}
}

func (t *Terminal) ShowInfo(ctx context.Context, msg string) {
	t.logger.Info(msg)
}

func (t *Terminal) ShowWarning(ctx context.Context, msg string) {
	t.logger.Warning(msg)
}

func (t *Terminal) ShowError(ctx context.Context, msg string) {
	t.logger.Error(msg)
}

// Prompt shows an interactive select, or answers with the configured choice
// when nobody is at the keyboard
func (t *Terminal) Prompt(ctx context.Context, msg string, choices ...string) (string, error) {
	if !t.interactive {
		t.logger.Warning(msg)
		if slices.Contains(choices, t.answer) {
			zerolog.Ctx(ctx).Debug().Str("answer", t.answer).Msg("answering prompt non-interactively")
			return t.answer, nil
		}
		return "", nil
	}

	selected, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(msg).
		WithOptions(choices).
		Show()
	if err != nil {
		return "", errors.Errorf("showing prompt: %w", err)
	}
	return selected, nil
}

// 🔄 Reload runs the configured reload command
func (t *Terminal) Reload(ctx context.Context) error {
	if t.reloadCommand == "" {
		t.logger.Info("Reload your editor window to pick up the new snippets.")
		return nil
	}

	zerolog.Ctx(ctx).Debug().Str("command", t.reloadCommand).Msg("reloading editor")

	cmd := exec.CommandContext(ctx, "sh", "-c", t.reloadCommand)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Errorf("running reload command: %w", err)
	}
	return nil
}
