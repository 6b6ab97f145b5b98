package snippet

import (
	"encoding/json"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📝 Entry is a single named snippet
type Entry struct {
	Label       string   `json:"-"`
	Prefix      []string `json:"prefix"`
	Body        string   `json:"body"`
	Description string   `json:"description,omitempty"`
}

// rawEntry mirrors the on-disk shape where prefix and body may each be a
// string or an array of strings
type rawEntry struct {
	Prefix      json.RawMessage `json:"prefix"`
	Body        json.RawMessage `json:"body"`
	Description string          `json:"description,omitempty"`
}

// UnmarshalJSON accepts prefix as a string or list, and body as a string or
// list of lines joined by "\n".
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Errorf("decoding entry: %w", err)
	}

	prefix, err := stringOrList(raw.Prefix)
	if err != nil {
		return errors.Errorf("decoding prefix: %w", err)
	}
	if len(prefix) == 0 {
		return errors.New("prefix is required")
	}

	if len(raw.Body) == 0 {
		return errors.New("body is required")
	}
	body, err := stringOrList(raw.Body)
	if err != nil {
		return errors.Errorf("decoding body: %w", err)
	}

	e.Prefix = prefix
	e.Body = strings.Join(body, "\n")
	e.Description = raw.Description
	return nil
}

// MarshalJSON writes a single prefix as a string and a multi-line body as a
// list of lines.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := struct {
		Prefix      any    `json:"prefix"`
		Body        any    `json:"body"`
		Description string `json:"description,omitempty"`
	}{
		Prefix:      e.Prefix,
		Body:        e.Body,
		Description: e.Description,
	}
	if len(e.Prefix) == 1 {
		out.Prefix = e.Prefix[0]
	}
	if strings.Contains(e.Body, "\n") {
		out.Body = strings.Split(e.Body, "\n")
	}
	return marshal(out, "")
}

func stringOrList(data json.RawMessage) ([]string, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		return []string{single}, nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Errorf("expected string or list of strings: %w", err)
	}
	return list, nil
}
