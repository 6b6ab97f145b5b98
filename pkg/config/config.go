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
	"slices"
	"strings"

	"github.com/walteh/wpsnip/pkg/snippet"
)

const (
	KeySnippetMode     = "wpSnippets.snippetMode"
	KeyRemoveArguments = "wpSnippets.removeArguments"
	KeyFilePatterns    = "wpSnippets.filePatterns"
)

// DefaultFilePatterns limits completion to PHP documents
var DefaultFilePatterns = []string{"**/*.php"}

// 📚 Settings is the complete set of persisted settings
type Settings struct {
	SnippetMode     string
	RemoveArguments bool
	FilePatterns    []string
}

// Defaults returns the settings used when nothing is persisted
func Defaults() Settings {
	return Settings{
		SnippetMode:     snippet.Full.String(),
		RemoveArguments: false,
		FilePatterns:    slices.Clone(DefaultFilePatterns),
	}
}

// Mode returns the desired snippet mode
func (s Settings) Mode() snippet.Mode {
	return snippet.ParseMode(s.SnippetMode)
}

// 🔍 normalize folds unrecognised values back to their defaults
func (s *Settings) normalize() {
	s.SnippetMode = s.Mode().String()
	if len(s.FilePatterns) == 0 {
		s.FilePatterns = slices.Clone(DefaultFilePatterns)
	}
}

// changedKeys lists the keys whose values differ between a and b
func changedKeys(a, b Settings) []string {
	var keys []string
	if a.SnippetMode != b.SnippetMode {
		keys = append(keys, KeySnippetMode)
	}
	if a.RemoveArguments != b.RemoveArguments {
		keys = append(keys, KeyRemoveArguments)
	}
	if !slices.Equal(a.FilePatterns, b.FilePatterns) {
		keys = append(keys, KeyFilePatterns)
	}
	return keys
}

// 🔌 Parser reads and writes one settings file format
type Parser interface {
	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool

	// 📝 Parse parses settings, applying defaults for absent keys
	Parse(ctx context.Context, data []byte) (*Settings, error)

	// Encode renders settings; existing is the current file content, if any
	Encode(ctx context.Context, s *Settings, existing []byte) ([]byte, error)
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	name := strings.ToLower(strings.TrimSpace(filename))
	for _, p := range parsers {
		if p.CanParse(name) {
			return p
		}
	}
	return nil
}
