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

package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/pkg/config"
	"github.com/walteh/wpsnip/pkg/host"
	"github.com/walteh/wpsnip/pkg/log"
	"github.com/walteh/wpsnip/pkg/snippet"
	"github.com/walteh/wpsnip/pkg/status"
)

// 🔧 SettingsStore is the part of the settings store the resolver needs
type SettingsStore interface {
	Get() config.Settings
	Update(ctx context.Context, key string, value any) error
}

// 🔧 Options contains the collaborators of a Resolver
type Options struct {
	// Settings holds the desired snippet mode
	Settings SettingsStore
	// Files reads and replaces the snippet files
	Files status.FileManager
	// Host shows messages and reloads the editor
	Host host.Host
}

// 📊 Report compares the desired and current snippet modes
type Report struct {
	Desired      snippet.Mode
	Current      snippet.Mode
	ActiveExists bool
	ActivePath   string
}

// InSync reports whether the active file already matches the settings
func (r *Report) InSync() bool {
	return r.Desired == r.Current
}

// 📦 Result describes what a sync did
type Result struct {
	From       snippet.Mode
	To         snippet.Mode
	Changed    bool
	FileStatus status.FileStatus
}

// 🎮 Resolver reconciles settings with the active snippet file
type Resolver struct {
	settings SettingsStore
	files    status.FileManager
	host     host.Host
}

// 🏭 New creates a new resolver with the given options
func New(opts Options) (*Resolver, error) {
	if opts.Settings == nil {
		return nil, errors.Errorf("settings store is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Host == nil {
		return nil, errors.Errorf("host is required")
	}
	return &Resolver{
		settings: opts.Settings,
		files:    opts.Files,
		host:     opts.Host,
	}, nil
}

// 🔍 Status compares the desired mode with the active file
func (r *Resolver) Status(ctx context.Context) (*Report, error) {
	desired := r.settings.Get().Mode()

	current, exists, err := r.currentMode(ctx)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Stringer("desired", desired).
		Stringer("current", current).
		Bool("active_exists", exists).
		Msg("checked snippet mode")

	return &Report{
		Desired:      desired,
		Current:      current,
		ActiveExists: exists,
		ActivePath:   r.files.Path(snippet.ActiveFile),
	}, nil
}

// currentMode infers the mode from the active file; a missing file is Full
// because every source candidate starts out Full shaped
func (r *Resolver) currentMode(ctx context.Context) (snippet.Mode, bool, error) {
	exists, err := r.files.Exists(ctx, snippet.ActiveFile)
	if err != nil {
		return snippet.Full, false, &SyncError{Kind: snippet.KindFilesystemFailure, Err: err}
	}
	if !exists {
		return snippet.Full, false, nil
	}

	content, err := r.files.ReadFile(ctx, snippet.ActiveFile)
	if err != nil {
		return snippet.Full, true, &SyncError{Kind: snippet.KindFilesystemFailure, Err: err}
	}
	return snippet.InferMode(content), true, nil
}

// 🔄 ResolveAndSync makes the active file match desired.
//
// The desired mode is always persisted. When the file already matches nothing
// else happens. Otherwise the mode's source file replaces the active file and
// the host is asked to reload. A missing source leaves every file untouched.
func (r *Resolver) ResolveAndSync(ctx context.Context, desired snippet.Mode) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	current, _, err := r.currentMode(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{From: current, To: desired}

	if desired == current {
		logger.Debug().Stringer("mode", desired).Msg("snippet file already in sync")
		if err := r.persist(ctx, desired); err != nil {
			return nil, err
		}
		return result, nil
	}

	source := desired.SourceFile()
	exists, err := r.files.Exists(ctx, source)
	if err != nil {
		return nil, &SyncError{Kind: snippet.KindFilesystemFailure, Mode: desired, Err: err}
	}
	if !exists {
		return nil, &SyncError{
			Kind: snippet.KindResourceMissing,
			Mode: desired,
			Err:  errors.Errorf("%s does not exist", r.files.Path(source)),
		}
	}

	if err := r.persist(ctx, desired); err != nil {
		return nil, err
	}

	fileStatus, err := r.files.CopyFile(ctx, source, snippet.ActiveFile)
	if err != nil {
		return nil, &SyncError{Kind: snippet.KindFilesystemFailure, Mode: desired, Err: err}
	}
	result.Changed = true
	result.FileStatus = fileStatus

	log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{
		Path:       snippet.ActiveFile,
		Mode:       desired.String(),
		Status:     fileStatus.String(),
		IsNew:      fileStatus == status.StatusNew,
		IsModified: fileStatus == status.StatusModified,
	})

	r.host.ShowInfo(ctx, fmt.Sprintf("Switched to %s WordPress Snippets. Reloading window...", desired))
	if err := r.host.Reload(ctx); err != nil {
		return result, errors.Errorf("reloading window: %w", err)
	}

	return result, nil
}

func (r *Resolver) persist(ctx context.Context, mode snippet.Mode) error {
	if err := r.settings.Update(ctx, config.KeySnippetMode, mode.String()); err != nil {
		return &SyncError{Kind: snippet.KindFilesystemFailure, Mode: mode, Err: errors.Errorf("saving settings: %w", err)}
	}
	return nil
}
