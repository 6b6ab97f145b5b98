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
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/pkg/text"
)

// 📚 Catalog maps labels to snippet entries. It is not modified after load.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

// NewCatalog builds a catalog from entries, keeping their order
func NewCatalog(entries ...Entry) *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if _, ok := c.entries[e.Label]; !ok {
			c.order = append(c.order, e.Label)
		}
		c.entries[e.Label] = e
	}
	return c
}

// 🎯 LoadCatalog reads a catalog from a snippet file
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading snippet catalog")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrResourceMissing, path)
		}
		return nil, errors.Errorf("%w: reading %s: %s", ErrFilesystemFailure, path, err)
	}

	cat, err := ParseCatalog(ctx, data)
	if err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}
	return cat, nil
}

// ParseCatalog decodes a snippet file. The document must be a JSON object;
// entries that are not snippet shaped are skipped with a warning.
func ParseCatalog(ctx context.Context, data []byte) (*Catalog, error) {
	logger := zerolog.Ctx(ctx)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrParseFailure, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Errorf("%w: snippet file is not a JSON object", ErrParseFailure)
	}

	c := &Catalog{entries: map[string]Entry{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("%w: %s", ErrParseFailure, err)
		}
		label, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Errorf("%w: decoding %q: %s", ErrParseFailure, label, err)
		}

		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			logger.Warn().Err(err).Str("label", label).Msg("skipping malformed snippet")
			continue
		}
		entry.Label = label

		if _, dup := c.entries[label]; !dup {
			c.order = append(c.order, label)
		}
		c.entries[label] = entry
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Errorf("%w: %s", ErrParseFailure, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Errorf("%w: trailing data after snippet object", ErrParseFailure)
	}

	return c, nil
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get returns the entry with the given label
func (c *Catalog) Get(label string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[label]
	return e, ok
}

// Entries returns all entries in file order
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, 0, len(c.order))
	for _, label := range c.order {
		out = append(out, c.entries[label])
	}
	return out
}

// 🔄 Flattened returns a copy of the catalog with every body flattened
func (c *Catalog) Flattened() *Catalog {
	entries := c.Entries()
	for i := range entries {
		entries[i].Body = text.Flatten(entries[i].Body)
	}
	return NewCatalog(entries...)
}

// Encode writes the catalog as an indented snippet file
func (c *Catalog) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, e := range c.Entries() {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := marshal(e.Label, "")
		if err != nil {
			return nil, errors.Errorf("encoding label %q: %w", e.Label, err)
		}
		value, err := marshal(e, "\t")
		if err != nil {
			return nil, errors.Errorf("encoding entry %q: %w", e.Label, err)
		}
		buf.WriteString("\n\t")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}

// marshal encodes v without HTML escaping; a non-empty prefix turns on
// tab indentation
func marshal(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if prefix != "" {
		enc.SetIndent(prefix, "\t")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
