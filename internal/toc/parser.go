// Package toc locates a printed table of contents inside extracted page text
// and parses it into (title, page number) entries. Parsing is a pure function
// of the input text and the document page count.
package toc

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound signals that no usable table of contents exists in the scanned
// window. It is a normal outcome, not a failure; callers fall back to
// fixed-size chunking.
var ErrNotFound = errors.New("no table of contents found")

// maxPrintedPage is a sanity cap on printed page numbers. Anything above it
// is treated as a false positive (dates, ISBN fragments, etc).
const maxPrintedPage = 10000

// minLineLen filters out page headers, column glyphs and other short debris
// before pattern matching.
const minLineLen = 5

// tocIndicators must appear somewhere in the scanned window (case
// insensitive) before line matching counts. Guards against parsing an index
// or body text as a TOC.
var tocIndicators = []string{"table of contents", "contents", "chapter", "index"}

// Page is one page of extracted text, identified by its physical 0-indexed
// position in the document.
type Page struct {
	Index int
	Text  string
}

// Entry is one parsed TOC line: a chapter title and the page number printed
// next to it. Page is the printed (1-indexed) number, not a physical page
// index.
type Entry struct {
	Title   string
	Page    int
	Pattern PatternID
}

// Parse scans the given pages for a table of contents and returns the parsed
// entries in source-scan order. totalPages bounds the accepted page numbers.
// Returns ErrNotFound when fewer than two entries are accepted.
func Parse(pages []Page, totalPages int) ([]Entry, error) {
	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	return ParseText(sb.String(), totalPages)
}

// ParseText is the line-level core of Parse, operating on a single block of
// extracted text.
func ParseText(text string, totalPages int) ([]Entry, error) {
	if !hasIndicator(text) {
		return nil, ErrNotFound
	}

	type candidate struct {
		entry Entry
		bare  bool
	}

	var candidates []candidate
	structured := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minLineLen {
			continue
		}

		for _, m := range matchers {
			sub := m.re.FindStringSubmatch(line)
			if sub == nil {
				continue
			}
			entry, ok := buildEntry(m.id, sub[1], sub[2], totalPages)
			if !ok {
				// A rejected line is skipped entirely rather than
				// handed to a lower-priority matcher.
				break
			}
			candidates = append(candidates, candidate{entry: entry, bare: m.bare})
			if !m.bare {
				structured++
			}
			break
		}
	}

	seen := make(map[string]bool)
	var entries []Entry
	for _, c := range candidates {
		if c.bare && structured == 0 {
			continue
		}
		// Repeated (title, page) pairs show up in multi-column layouts
		// where the extractor emits the same line twice.
		key := strings.ToLower(c.entry.Title) + "\x00" + strconv.Itoa(c.entry.Page)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, c.entry)
	}

	if len(entries) < 2 {
		return nil, ErrNotFound
	}
	return entries, nil
}

// buildEntry validates and normalizes a raw pattern match.
func buildEntry(id PatternID, rawTitle, rawPage string, totalPages int) (Entry, bool) {
	page, err := strconv.Atoi(rawPage)
	if err != nil {
		return Entry{}, false
	}
	if page < 1 || page > totalPages || page > maxPrintedPage {
		return Entry{}, false
	}
	title := cleanTitle(rawTitle)
	if title == "" {
		return Entry{}, false
	}
	return Entry{Title: title, Page: page, Pattern: id}, true
}

func hasIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, ind := range tocIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
