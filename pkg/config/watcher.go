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

package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 👀 Watch reloads the store whenever its settings file is written, until ctx
// is done. Listeners registered with OnChange see the changed keys.
//
// The parent directory is watched so editors that save by renaming are
// picked up. ready, when non-nil, is closed once the watch is in place.
func (s *Store) Watch(ctx context.Context, ready chan<- struct{}) error {
	logger := zerolog.Ctx(ctx)

	if s.path == "" {
		return errors.Errorf("memory store has no settings file to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(s.path)
	if err != nil {
		return errors.Errorf("resolving settings path: %w", err)
	}

	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	logger.Debug().Str("path", target).Msg("watching settings file")
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Msg("settings file changed")
			if err := s.Reload(ctx); err != nil {
				// a half written file parses on the next event
				logger.Warn().Err(err).Msg("reloading settings")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("settings watcher error")
		}
	}
}
