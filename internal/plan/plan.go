// Package plan converts parsed TOC entries into a validated sequence of
// non-overlapping page ranges, and provides the fixed-size fallback used when
// no table of contents is available.
package plan

import "errors"

// ErrUnresolvable signals that a TOC was found but no valid page range
// survived filtering. Callers fall back to fixed-size chunking.
var ErrUnresolvable = errors.New("no usable chapter ranges")

// ErrInvalidChunkSize is returned for a chunk size below 1.
var ErrInvalidChunkSize = errors.New("chunk size must be at least 1")

// Mode selects how a document is split.
type Mode string

const (
	ModeChapters Mode = "chapters"
	ModePages    Mode = "pages"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeChapters:
		return ModeChapters, true
	case ModePages:
		return ModePages, true
	}
	return "", false
}

// Range is one output chunk: a half-open interval of physical page indexes
// (0-indexed, Start inclusive, End exclusive) with the title carried into
// the output file's bookmark and metadata.
type Range struct {
	Title string `json:"title" yaml:"title"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

// Pages returns the number of pages covered by the range.
func (r Range) Pages() int { return r.End - r.Start }

// Warning records an entry that was dropped or adjusted during resolution,
// with enough context to diagnose pattern false negatives.
type Warning struct {
	Page   int    `json:"page" yaml:"page"`
	Title  string `json:"title" yaml:"title"`
	Reason string `json:"reason" yaml:"reason"`
}

// Plan is the complete ordered set of output ranges for one document.
// Immutable once built; nothing in it persists across runs.
type Plan struct {
	Mode     Mode      `json:"mode" yaml:"mode"`
	Fallback bool      `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Ranges   []Range   `json:"ranges" yaml:"ranges"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
