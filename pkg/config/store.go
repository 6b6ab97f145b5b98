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
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ChangeEvent names the settings keys that changed
type ChangeEvent struct {
	Keys []string
}

// AffectsConfiguration reports whether key is among the changed keys
func (e ChangeEvent) AffectsConfiguration(key string) bool {
	return slices.Contains(e.Keys, key)
}

// Listener is notified after settings change
type Listener func(ctx context.Context, ev ChangeEvent)

// 🗄️ Store holds the current settings and persists updates.
//
// A Store without a path keeps settings in memory only.
type Store struct {
	path   string
	parser Parser

	mu        sync.Mutex
	settings  Settings
	listeners map[int]Listener
	nextID    int
}

// NewMemoryStore creates a store that never touches disk
func NewMemoryStore(s Settings) *Store {
	s.normalize()
	return &Store{
		settings:  s,
		listeners: map[int]Listener{},
	}
}

// 🎯 Load reads settings from path. A missing file yields defaults and is
// created on the first update.
func Load(ctx context.Context, path string) (*Store, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading settings")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	s := &Store{
		path:      path,
		parser:    p,
		listeners: map[int]Listener{},
	}

	settings, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	s.settings = *settings

	return s, nil
}

// Path returns the settings file, empty for a memory store
func (s *Store) Path() string {
	return s.path
}

// Get returns a copy of the current settings
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.settings
	out.FilePatterns = slices.Clone(s.settings.FilePatterns)
	return out
}

// 👂 OnChange registers a listener and returns a function that removes it
func (s *Store) OnChange(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// ✏️ Update sets a single key and persists it. Setting a key to its current
// value is a no-op and notifies nobody.
func (s *Store) Update(ctx context.Context, key string, value any) error {
	s.mu.Lock()

	next := s.settings
	next.FilePatterns = slices.Clone(s.settings.FilePatterns)

	switch key {
	case KeySnippetMode:
		switch v := value.(type) {
		case string:
			next.SnippetMode = v
		case fmt.Stringer:
			next.SnippetMode = v.String()
		default:
			s.mu.Unlock()
			return errors.Errorf("%s: expected string, got %T", key, value)
		}
	case KeyRemoveArguments:
		v, ok := value.(bool)
		if !ok {
			s.mu.Unlock()
			return errors.Errorf("%s: expected bool, got %T", key, value)
		}
		next.RemoveArguments = v
	case KeyFilePatterns:
		v, ok := value.([]string)
		if !ok {
			s.mu.Unlock()
			return errors.Errorf("%s: expected []string, got %T", key, value)
		}
		next.FilePatterns = slices.Clone(v)
	default:
		s.mu.Unlock()
		return errors.Errorf("unknown setting %q", key)
	}
	next.normalize()

	keys := changedKeys(s.settings, next)
	if len(keys) == 0 {
		s.mu.Unlock()
		return nil
	}

	if err := s.write(ctx, &next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.settings = next
	s.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Strs("keys", keys).Msg("settings updated")
	s.notify(ctx, ChangeEvent{Keys: keys})
	return nil
}

// 🔄 Reload re-reads the settings file and notifies listeners of any keys
// that changed on disk.
func (s *Store) Reload(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	settings, err := s.read(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	keys := changedKeys(s.settings, *settings)
	s.settings = *settings
	s.mu.Unlock()

	if len(keys) > 0 {
		zerolog.Ctx(ctx).Debug().Strs("keys", keys).Msg("settings changed on disk")
		s.notify(ctx, ChangeEvent{Keys: keys})
	}
	return nil
}

func (s *Store) notify(ctx context.Context, ev ChangeEvent) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, ev)
	}
}

func (s *Store) read(ctx context.Context) (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Errorf("reading settings file: %w", err)
	}

	settings, err := s.parser.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing settings file %s: %w", s.path, err)
	}
	return settings, nil
}

// write persists settings; the caller holds s.mu
func (s *Store) write(ctx context.Context, settings *Settings) error {
	if s.path == "" {
		return nil
	}

	existing, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Errorf("reading settings file: %w", err)
	}

	out, err := s.parser.Encode(ctx, settings, existing)
	if err != nil {
		return errors.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0644); err != nil {
		return errors.Errorf("writing settings file: %w", err)
	}
	return nil
}
