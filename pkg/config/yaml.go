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
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

type yamlSettings struct {
	WPSnippets struct {
		SnippetMode     *string  `yaml:"snippetMode,omitempty"`
		RemoveArguments *bool    `yaml:"removeArguments,omitempty"`
		FilePatterns    []string `yaml:"filePatterns,omitempty"`
	} `yaml:"wpSnippets"`
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Settings, error) {
	cfg := Defaults()

	var raw yamlSettings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && err != io.EOF {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if raw.WPSnippets.SnippetMode != nil {
		cfg.SnippetMode = *raw.WPSnippets.SnippetMode
	}
	if raw.WPSnippets.RemoveArguments != nil {
		cfg.RemoveArguments = *raw.WPSnippets.RemoveArguments
	}
	if raw.WPSnippets.FilePatterns != nil {
		cfg.FilePatterns = raw.WPSnippets.FilePatterns
	}

	cfg.normalize()
	return &cfg, nil
}

func (p *YAMLParser) Encode(ctx context.Context, s *Settings, existing []byte) ([]byte, error) {
	var raw yamlSettings
	raw.WPSnippets.SnippetMode = &s.SnippetMode
	raw.WPSnippets.RemoveArguments = &s.RemoveArguments
	raw.WPSnippets.FilePatterns = s.FilePatterns

	out, err := yaml.Marshal(&raw)
	if err != nil {
		return nil, errors.Errorf("encoding YAML: %w", err)
	}
	return out, nil
}
