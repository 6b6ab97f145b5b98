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

package extension

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/pkg/completion"
	"github.com/walteh/wpsnip/pkg/config"
	"github.com/walteh/wpsnip/pkg/host"
	"github.com/walteh/wpsnip/pkg/operation"
	"github.com/walteh/wpsnip/pkg/snippet"
	"github.com/walteh/wpsnip/pkg/status"
)

// OutOfSyncMessage is the modal shown when the active file disagrees with
// the settings at startup
const OutOfSyncMessage = `Your chosen WordPress Snippet set is out of sync. Press "Reload now" to fix this.`

// State tracks whether the active file matches the settings
type State int

const (
	StateUnchecked State = iota
	StateInSync
	StateOutOfSync
)

func (s State) String() string {
	switch s {
	case StateInSync:
		return "in sync"
	case StateOutOfSync:
		return "out of sync"
	default:
		return "unchecked"
	}
}

// SettingsStore is the settings surface an activation needs
type SettingsStore interface {
	operation.SettingsStore
	OnChange(l config.Listener) func()
}

// 🔧 Options configures an Extension
type Options struct {
	// Settings is required
	Settings SettingsStore
	// Host is required
	Host host.Host
	// SnippetsDir holds the source and active snippet files
	SnippetsDir string
	// Files overrides the file manager rooted at SnippetsDir
	Files status.FileManager
}

type job func(ctx context.Context) error

// 🧩 Extension is one activation of the snippet toolbox
type Extension struct {
	settings SettingsStore
	host     host.Host
	files    status.FileManager
	resolver *operation.Resolver

	mu             sync.Mutex
	active         bool
	state          State
	shownOutOfSync bool
	supplier       *completion.Supplier
	dispose        func()

	queueMu sync.Mutex
	running bool
	queue   []job
}

// 🏭 New creates an inactive extension
func New(opts Options) (*Extension, error) {
	if opts.Settings == nil {
		return nil, errors.Errorf("settings store is required")
	}
	if opts.Host == nil {
		return nil, errors.Errorf("host is required")
	}

	files := opts.Files
	if files == nil {
		if opts.SnippetsDir == "" {
			return nil, errors.Errorf("snippets directory is required")
		}
		files = status.New(opts.SnippetsDir)
	}

	resolver, err := operation.New(operation.Options{
		Settings: opts.Settings,
		Files:    files,
		Host:     opts.Host,
	})
	if err != nil {
		return nil, errors.Errorf("creating resolver: %w", err)
	}

	return &Extension{
		settings: opts.Settings,
		host:     opts.Host,
		files:    files,
		resolver: resolver,
	}, nil
}

// 🚀 Activate loads the catalog, subscribes to settings changes and runs
// the startup check. A catalog that fails to load is reported through the
// host and replaced with an empty one. The returned error is the startup
// check's, which has already been shown to the user.
func (e *Extension) Activate(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return errors.Errorf("extension already active")
	}
	e.active = true
	e.state = StateUnchecked
	e.shownOutOfSync = false
	e.mu.Unlock()

	catalog, err := snippet.LoadCatalog(ctx, e.files.Path(snippet.FullSourceFile))
	if err != nil {
		logger.Error().Err(err).Msg("loading snippet catalog")
		e.host.ShowError(ctx, "Failed to load WordPress snippets: "+err.Error())
		catalog = snippet.NewCatalog()
	}
	logger.Debug().Int("entries", catalog.Len()).Msg("snippet catalog loaded")

	dispose := e.settings.OnChange(func(ctx context.Context, ev config.ChangeEvent) {
		// already reported through the host
		_ = e.ConfigurationChanged(ctx, ev)
	})

	e.mu.Lock()
	e.supplier = completion.NewSupplier(catalog, e.settings)
	e.dispose = dispose
	e.mu.Unlock()

	return e.Check(ctx)
}

// Deactivate drops the catalog and stops listening for settings changes
func (e *Extension) Deactivate(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dispose != nil {
		e.dispose()
		e.dispose = nil
	}
	e.supplier = nil
	e.active = false
	e.state = StateUnchecked

	zerolog.Ctx(ctx).Debug().Msg("extension deactivated")
}

// State returns the current sync state
func (e *Extension) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// 🔍 Check compares the settings with the active file and, when they
// disagree, asks the user whether to fix it now. The question is asked at
// most once per activation.
func (e *Extension) Check(ctx context.Context) error {
	return e.dispatch(ctx, e.startupCheck)
}

// UseFullSnippets switches the active file to Full snippets
func (e *Extension) UseFullSnippets(ctx context.Context) error {
	return e.dispatch(ctx, e.syncTo(snippet.Full))
}

// UseFlatSnippets switches the active file to Flat snippets
func (e *Extension) UseFlatSnippets(ctx context.Context) error {
	return e.dispatch(ctx, e.syncTo(snippet.Flat))
}

// 👂 ConfigurationChanged syncs to the persisted mode when the mode setting
// is among the changed keys
func (e *Extension) ConfigurationChanged(ctx context.Context, ev config.ChangeEvent) error {
	if !ev.AffectsConfiguration(config.KeySnippetMode) {
		return nil
	}
	return e.dispatch(ctx, func(ctx context.Context) error {
		return e.sync(ctx, e.settings.Get().Mode())
	})
}

// WindowFocusChanged is called when the host window gains or loses focus
func (e *Extension) WindowFocusChanged(ctx context.Context, focused bool) {
	zerolog.Ctx(ctx).Trace().Bool("focused", focused).Msg("window focus changed")
}

// Complete returns completion candidates for a document
func (e *Extension) Complete(ctx context.Context, req completion.Request) []completion.Item {
	e.mu.Lock()
	supplier := e.supplier
	e.mu.Unlock()

	return supplier.Provide(ctx, req)
}

func (e *Extension) startupCheck(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	report, err := e.resolver.Status(ctx)
	if err != nil {
		e.host.ShowError(ctx, err.Error())
		return err
	}

	if report.InSync() {
		e.markInSync()
		return nil
	}

	e.mu.Lock()
	e.state = StateOutOfSync
	shown := e.shownOutOfSync
	e.shownOutOfSync = true
	e.mu.Unlock()

	if shown {
		logger.Debug().Msg("out of sync notice already shown")
		return nil
	}

	choice, err := e.host.Prompt(ctx, OutOfSyncMessage, host.ChoiceReloadNow, host.ChoiceIgnore)
	if err != nil {
		e.host.ShowError(ctx, "Failed to ask about reloading WordPress snippets: "+err.Error())
		return errors.Errorf("prompting for reload: %w", err)
	}

	if choice != host.ChoiceReloadNow {
		logger.Info().Stringer("desired", report.Desired).Stringer("current", report.Current).Msg("out of sync snippets ignored")
		return nil
	}

	return e.sync(ctx, report.Desired)
}

func (e *Extension) syncTo(mode snippet.Mode) job {
	return func(ctx context.Context) error {
		return e.sync(ctx, mode)
	}
}

func (e *Extension) sync(ctx context.Context, mode snippet.Mode) error {
	result, err := e.resolver.ResolveAndSync(ctx, mode)
	if err != nil {
		e.host.ShowError(ctx, err.Error())
		return err
	}

	e.markInSync()
	zerolog.Ctx(ctx).Debug().
		Stringer("from", result.From).
		Stringer("to", result.To).
		Bool("changed", result.Changed).
		Msg("snippet mode resolved")
	return nil
}

func (e *Extension) markInSync() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateInSync
	e.shownOutOfSync = false
}

// dispatch runs j now, or queues it when another job is running. The caller
// that started the run drains the queue before returning.
func (e *Extension) dispatch(ctx context.Context, j job) error {
	e.queueMu.Lock()
	if e.running {
		e.queue = append(e.queue, j)
		e.queueMu.Unlock()
		zerolog.Ctx(ctx).Debug().Msg("event queued behind running handler")
		return nil
	}
	e.running = true
	e.queueMu.Unlock()

	err := e.run(ctx, j)

	for {
		e.queueMu.Lock()
		if len(e.queue) == 0 {
			e.running = false
			e.queueMu.Unlock()
			return err
		}
		next := e.queue[0]
		e.queue = e.queue[1:]
		e.queueMu.Unlock()

		if qerr := e.run(ctx, next); qerr != nil {
			zerolog.Ctx(ctx).Debug().Err(qerr).Msg("queued handler failed")
		}
	}
}

// run recovers panics so one bad handler does not leave the queue stuck
func (e *Extension) run(ctx context.Context, j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("handler panicked: %v", r)
			e.host.ShowError(ctx, err.Error())
		}
	}()
	return j(ctx)
}
