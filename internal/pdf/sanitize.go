package pdf

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxFilenameBytes bounds sanitized filenames to a size safe on every
// mainstream filesystem, leaving headroom for a sequence prefix and the .pdf
// extension.
const DefaultMaxFilenameBytes = 200

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
)

// SanitizeFilename turns a chapter title into a filesystem-safe name.
// Reserved characters become underscores, whitespace runs collapse, and the
// result is truncated to maxBytes without splitting a UTF-8 sequence,
// preferring a word boundary. maxBytes < 1 selects the default bound.
func SanitizeFilename(title string, maxBytes int) string {
	if maxBytes < 1 {
		maxBytes = DefaultMaxFilenameBytes
	}

	safe := invalidFilenameChars.ReplaceAllString(title, "_")
	safe = whitespaceRun.ReplaceAllString(safe, " ")
	safe = strings.ReplaceAll(safe, "..", ".")
	safe = strings.TrimSpace(safe)

	if len(safe) > maxBytes {
		cut := maxBytes
		for cut > 0 && !utf8.RuneStart(safe[cut]) {
			cut--
		}
		safe = safe[:cut]
		if idx := strings.LastIndex(safe, " "); idx > 0 {
			safe = safe[:idx]
		}
		safe = strings.TrimRight(safe, " .")
	}
	if safe == "" {
		safe = "untitled"
	}
	return safe
}
