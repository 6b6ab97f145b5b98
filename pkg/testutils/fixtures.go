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

// Package testutils holds fixtures and mocks shared by package tests.
package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/walteh/wpsnip/pkg/snippet"
)

const (
	// FullSnippets is a small Full mode source
	FullSnippets = `{
	"add_action": {
		"prefix": "add_action",
		"body": "add_action( ${1:\\$hook_name}, ${2:\\$callback} );",
		"description": "Adds a callback function to an action hook."
	},
	"get_the_ID": {
		"prefix": ["get_the_ID", "the_id"],
		"body": "get_the_ID()",
		"description": "Retrieves the ID of the current item in the WordPress Loop."
	}
}
`

	// FlatSnippets is FullSnippets with the arguments removed
	FlatSnippets = `{
	"add_action": {
		"prefix": "add_action",
		"body": "add_action()",
		"description": "Adds a callback function to an action hook."
	},
	"get_the_ID": {
		"prefix": ["get_the_ID", "the_id"],
		"body": "get_the_ID()",
		"description": "Retrieves the ID of the current item in the WordPress Loop."
	}
}
`
)

// Context returns a context carrying a logger that writes to the test log
func Context(t *testing.T) context.Context {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

// SnippetsDir writes the Full and Flat sources into a temporary directory
// and, when active is non-empty, the active snippet file too.
func SnippetsDir(t *testing.T, active string) string {
	t.Helper()

	dir := t.TempDir()
	WriteFile(t, dir, snippet.FullSourceFile, FullSnippets)
	WriteFile(t, dir, snippet.FlatSourceFile, FlatSnippets)
	if active != "" {
		WriteFile(t, dir, snippet.ActiveFile, active)
	}
	return dir
}

// WriteFile writes content to dir/name
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644), "writing %s", name)
}

// ReadFile reads dir/name
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err, "reading %s", name)
	return string(data)
}
