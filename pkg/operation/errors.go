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

package operation

import (
	"github.com/walteh/wpsnip/pkg/snippet"
)

// ❌ SyncError is a failed reconciliation, worded for the user
type SyncError struct {
	Kind snippet.Kind
	Mode snippet.Mode
	Err  error
}

func (e *SyncError) Error() string {
	if e.Kind == snippet.KindResourceMissing {
		return e.Mode.String() + " snippets file not found."
	}
	return "Failed to switch snippet file: " + e.Err.Error()
}

// Unwrap exposes both the kind sentinel and the cause
func (e *SyncError) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case snippet.KindResourceMissing:
		sentinel = snippet.ErrResourceMissing
	case snippet.KindParseFailure:
		sentinel = snippet.ErrParseFailure
	case snippet.KindFilesystemFailure:
		sentinel = snippet.ErrFilesystemFailure
	}
	if sentinel == nil {
		return []error{e.Err}
	}
	return []error{sentinel, e.Err}
}
