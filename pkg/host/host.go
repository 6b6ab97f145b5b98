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


// Package host is the boundary to the editor that embeds the snippet
// toolbox: message display, modal prompts and window reloads.
package host

import (
	"context"
)

const (
	ChoiceReloadNow = "Reload Now"
	ChoiceIgnore    = "Ignore"
)

// 🖥️ Host is everything the toolbox asks of its editor
type Host interface {
	ShowInfo(ctx context.Context, msg string)
	ShowWarning(ctx context.Context, msg string)
	ShowError(ctx context.Context, msg string)

	// Prompt blocks until the user picks one of choices. An empty result
	// means the prompt was dismissed.
	Prompt(ctx context.Context, msg string, choices ...string) (string, error)

	// Reload restarts the editor window so cached completions are dropped
	Reload(ctx context.Context) error
}
