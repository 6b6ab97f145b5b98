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

package text

import (
	"regexp"
)

var (
	// identifier(  ) with nothing around it
	zeroArgCall = regexp.MustCompile(`^([\w\\]+)\s*\(\s*\)$`)

	// leading identifier( of a call shaped body
	callPrefix = regexp.MustCompile(`^([\w\\]+)\s*\(`)

	// $1, $0, ${1}, ${1:default}, ${1|a,b|}
	placeholder = regexp.MustCompile(`\$\{\d+(?:[:|][^}]*)?\}|\$\d+`)

	// a default may end in a literal $, as in ${1:a$}
	defaultPlaceholder = regexp.MustCompile(`\$\{\d+:((?:[^$}]|\$[^{}\d])*\$?)\}`)
	choicePlaceholder  = regexp.MustCompile(`\$\{\d+\|([^,|}]*)[^}]*\|\}`)
	barePlaceholder    = regexp.MustCompile(`\$\{\d+\}|\$\d+`)
)

// Flatten reduces a snippet body to plain completion text with no tab-stops.
//
// A bare zero argument call collapses to identifier(). A call shaped body that
// carries placeholders is reduced to identifier() as well, discarding every
// argument after the first paren. Bodies without placeholders are returned as
// is. Multi-line bodies must already be joined with "\n".
func Flatten(body string) string {
	if body == "" {
		return body
	}

	if m := zeroArgCall.FindStringSubmatch(body); m != nil {
		return m[1] + "()"
	}

	if !HasPlaceholder(body) {
		return body
	}

	if m := callPrefix.FindStringSubmatch(body); m != nil {
		return m[1] + "()"
	}

	return reduceStripped(StripPlaceholders(body))
}

// reduceStripped applies the call rules once more to a stripped body so a
// second Flatten leaves the result alone
func reduceStripped(stripped string) string {
	if m := zeroArgCall.FindStringSubmatch(stripped); m != nil {
		return m[1] + "()"
	}
	if HasPlaceholder(stripped) {
		if m := callPrefix.FindStringSubmatch(stripped); m != nil {
			return m[1] + "()"
		}
	}
	return stripped
}

// HasPlaceholder reports whether body contains a numbered tab-stop or the
// final cursor marker.
func HasPlaceholder(body string) bool {
	return placeholder.MatchString(body)
}

// StripPlaceholders replaces every placeholder with its default text (the
// first option for choices, nothing for bare tab-stops). Nested placeholders
// are resolved from the inside out.
func StripPlaceholders(body string) string {
	for {
		next := defaultPlaceholder.ReplaceAllString(body, "${1}")
		next = choicePlaceholder.ReplaceAllString(next, "${1}")
		next = barePlaceholder.ReplaceAllString(next, "")
		if next == body {
			return next
		}
		body = next
	}
}
