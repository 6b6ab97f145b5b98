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

package snippet

import (
	"bytes"
	"strings"
)

// 🎚️ Mode is the snippet variant materialized in the active snippet file
type Mode int

const (
	// Full bodies keep numbered tab-stops for every argument
	Full Mode = iota
	// Flat bodies are plain calls with the arguments stripped
	Flat
)

// FullModeMarker is the text that only full mode snippet files contain: a
// numbered placeholder whose default value starts with an escaped PHP variable.
const FullModeMarker = `${1:\`

// String returns the settings value for the mode
func (m Mode) String() string {
	if m == Flat {
		return "Flat"
	}
	return "Full"
}

// ParseMode parses a settings value. Case and surrounding whitespace are
// ignored, so "flat" and " FLAT " are Flat. Anything else is Full.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "flat") {
		return Flat
	}
	return Full
}

// 🔍 InferMode guesses the mode of a snippet file from its content.
//
// This is a heuristic: any text that happens to contain FullModeMarker reads
// as Full.
func InferMode(content []byte) Mode {
	if bytes.Contains(content, []byte(FullModeMarker)) {
		return Full
	}
	return Flat
}

// SourceFile returns the name of the bundled file holding the mode's snippets
func (m Mode) SourceFile() string {
	if m == Flat {
		return FlatSourceFile
	}
	return FullSourceFile
}

const (
	FullSourceFile = "snippets-full.json"
	FlatSourceFile = "snippets-flat.json"
	ActiveFile     = "snippets.json"
)
