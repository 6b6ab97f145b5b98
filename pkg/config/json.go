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
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".json")
}

// 📝 Parse parses settings from a flat keyed JSON object
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Settings, error) {
	cfg := Defaults()
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}

	if v, ok := raw[KeySnippetMode]; ok {
		if err := json.Unmarshal(v, &cfg.SnippetMode); err != nil {
			return nil, errors.Errorf("parsing %s: %w", KeySnippetMode, err)
		}
	}
	if v, ok := raw[KeyRemoveArguments]; ok {
		if err := json.Unmarshal(v, &cfg.RemoveArguments); err != nil {
			return nil, errors.Errorf("parsing %s: %w", KeyRemoveArguments, err)
		}
	}
	if v, ok := raw[KeyFilePatterns]; ok {
		if err := json.Unmarshal(v, &cfg.FilePatterns); err != nil {
			return nil, errors.Errorf("parsing %s: %w", KeyFilePatterns, err)
		}
	}

	cfg.normalize()
	return &cfg, nil
}

// Encode writes our keys into existing, leaving every other key in place
func (p *JSONParser) Encode(ctx context.Context, s *Settings, existing []byte) ([]byte, error) {
	raw := map[string]any{}
	if len(bytes.TrimSpace(existing)) > 0 {
		if err := json.Unmarshal(existing, &raw); err != nil {
			return nil, errors.Errorf("parsing existing JSON: %w", err)
		}
	}

	raw[KeySnippetMode] = s.SnippetMode
	raw[KeyRemoveArguments] = s.RemoveArguments
	raw[KeyFilePatterns] = s.FilePatterns

	out, err := json.MarshalIndent(raw, "", "\t")
	if err != nil {
		return nil, errors.Errorf("encoding JSON: %w", err)
	}
	return append(out, '\n'), nil
}
