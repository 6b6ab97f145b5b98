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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses settings from a wpsnippets block
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Settings, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "settings.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	type hclSettings struct {
		WPSnippets *struct {
			SnippetMode     *string  `hcl:"snippet_mode,optional"`
			RemoveArguments *bool    `hcl:"remove_arguments,optional"`
			FilePatterns    []string `hcl:"file_patterns,optional"`
		} `hcl:"wpsnippets,block"`
	}

	var raw hclSettings
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Defaults()
	if raw.WPSnippets != nil {
		if raw.WPSnippets.SnippetMode != nil {
			cfg.SnippetMode = *raw.WPSnippets.SnippetMode
		}
		if raw.WPSnippets.RemoveArguments != nil {
			cfg.RemoveArguments = *raw.WPSnippets.RemoveArguments
		}
		if raw.WPSnippets.FilePatterns != nil {
			cfg.FilePatterns = raw.WPSnippets.FilePatterns
		}
	}

	cfg.normalize()
	return &cfg, nil
}

// Encode renders a fresh wpsnippets block
func (p *HCLParser) Encode(ctx context.Context, s *Settings, existing []byte) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body().AppendNewBlock("wpsnippets", nil).Body()

	body.SetAttributeValue("snippet_mode", cty.StringVal(s.SnippetMode))
	body.SetAttributeValue("remove_arguments", cty.BoolVal(s.RemoveArguments))

	patterns := cty.ListValEmpty(cty.String)
	if len(s.FilePatterns) > 0 {
		vals := make([]cty.Value, 0, len(s.FilePatterns))
		for _, pattern := range s.FilePatterns {
			vals = append(vals, cty.StringVal(pattern))
		}
		patterns = cty.ListVal(vals)
	}
	body.SetAttributeValue("file_patterns", patterns)

	return f.Bytes(), nil
}
