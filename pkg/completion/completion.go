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

// Package completion turns the snippet catalog into completion candidates.
package completion

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"

	"github.com/walteh/wpsnip/pkg/config"
	"github.com/walteh/wpsnip/pkg/snippet"
	"github.com/walteh/wpsnip/pkg/text"
)

// SortTier prefixes every sort key so snippets group ahead of other
// suggestions
const SortTier = "!"

// ItemKind mirrors the editor's completion item kinds we emit
type ItemKind int

const (
	KindText ItemKind = iota
	KindSnippet
)

func (k ItemKind) String() string {
	if k == KindSnippet {
		return "snippet"
	}
	return "text"
}

// 📝 Item is one completion candidate
type Item struct {
	Label         string   `json:"label"`
	Detail        string   `json:"detail"`
	Documentation string   `json:"documentation,omitempty"`
	InsertText    string   `json:"insertText"`
	SortText      string   `json:"sortText"`
	Kind          ItemKind `json:"kind"`
}

// Request describes the document asking for completions
type Request struct {
	// Path of the document; empty skips the file pattern check
	Path string
	// Query is the word being typed; empty returns every candidate
	Query string
}

// SettingsSource reads the settings in effect for a request
type SettingsSource interface {
	Get() config.Settings
}

// 🎯 Supplier produces completion candidates from a catalog
type Supplier struct {
	catalog  *snippet.Catalog
	settings SettingsSource
}

// NewSupplier creates a supplier. A nil catalog yields no candidates.
func NewSupplier(catalog *snippet.Catalog, settings SettingsSource) *Supplier {
	return &Supplier{
		catalog:  catalog,
		settings: settings,
	}
}

// 🔍 Provide returns one candidate per entry per prefix, ordered by sort key.
// Settings are read on every call so a toggle applies to the next request.
func (s *Supplier) Provide(ctx context.Context, req Request) []Item {
	logger := zerolog.Ctx(ctx)

	if s == nil || s.catalog.Len() == 0 {
		return nil
	}

	settings := config.Defaults()
	if s.settings != nil {
		settings = s.settings.Get()
	}

	if req.Path != "" && !Matches(settings.FilePatterns, req.Path) {
		logger.Debug().Str("path", req.Path).Strs("patterns", settings.FilePatterns).Msg("document not covered by file patterns")
		return nil
	}

	items := make([]Item, 0, s.catalog.Len())
	for _, entry := range s.catalog.Entries() {
		insert := entry.Body
		if settings.RemoveArguments {
			insert = text.Flatten(entry.Body)
		}

		for _, prefix := range entry.Prefix {
			if req.Query != "" && !fuzzy.MatchFold(req.Query, prefix) {
				continue
			}
			items = append(items, Item{
				Label:         prefix,
				Detail:        entry.Label,
				Documentation: entry.Description,
				InsertText:    insert,
				SortText:      SortTier + prefix,
				Kind:          KindSnippet,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortText != items[j].SortText {
			return items[i].SortText < items[j].SortText
		}
		return items[i].Detail < items[j].Detail
	})

	logger.Debug().Int("candidates", len(items)).Bool("remove_arguments", settings.RemoveArguments).Msg("provided completions")
	return items
}

// Matches reports whether path matches any of the doublestar patterns.
// Invalid patterns never match.
func Matches(patterns []string, path string) bool {
	name := strings.TrimLeft(filepath.ToSlash(path), "/")
	for _, pattern := range patterns {
		ok, err := doublestar.Match(strings.TrimLeft(pattern, "/"), name)
		if err == nil && ok {
			return true
		}
	}
	return false
}
