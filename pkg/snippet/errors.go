package snippet

import (
	"gitlab.com/tozd/go/errors"
)

// Kind classifies errors surfaced to the user
type Kind int

const (
	KindUnknown Kind = iota
	// KindResourceMissing means a source snippet file or the catalog is absent
	KindResourceMissing
	// KindParseFailure means the catalog is present but not a JSON object
	KindParseFailure
	// KindFilesystemFailure covers any other read or copy failure
	KindFilesystemFailure
)

func (k Kind) String() string {
	switch k {
	case KindResourceMissing:
		return "resource missing"
	case KindParseFailure:
		return "parse failure"
	case KindFilesystemFailure:
		return "filesystem failure"
	default:
		return "unknown"
	}
}

var (
	ErrResourceMissing   = errors.Base("resource missing")
	ErrParseFailure      = errors.Base("parse failure")
	ErrFilesystemFailure = errors.Base("filesystem failure")
)

// KindOf returns the kind of the first sentinel found in err's chain
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrResourceMissing):
		return KindResourceMissing
	case errors.Is(err, ErrParseFailure):
		return KindParseFailure
	case errors.Is(err, ErrFilesystemFailure):
		return KindFilesystemFailure
	default:
		return KindUnknown
	}
}
