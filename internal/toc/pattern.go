package toc

import (
	"regexp"
	"strings"
	"unicode"
)

// PatternID identifies which matcher produced a parsed entry.
type PatternID string

const (
	// PatternChapterKeyword matches lines like "Chapter 3: The Long Road 45".
	PatternChapterKeyword PatternID = "chapter-keyword"
	// PatternNumberedSection matches lines like "2.4 Memory Layout 78".
	PatternNumberedSection PatternID = "numbered-section"
	// PatternKeywordOnly matches back/front-matter headings like "Appendix B 210"
	// or "Bibliography 350" where the keyword itself is the title.
	PatternKeywordOnly PatternID = "keyword-only"
	// PatternDottedLeader matches lines with leader characters between the
	// title and the page number, e.g. "Introduction ............ 5".
	PatternDottedLeader PatternID = "dotted-leader"
	// PatternBare matches "Title 42" with nothing but whitespace before the
	// page number, including digit-leading titles like "1. Getting Started
	// 12". Lowest priority; only admitted when a higher-priority pattern
	// matched somewhere in the scanned window, since otherwise it fires on
	// arbitrary body text.
	PatternBare PatternID = "bare"
)

// matcher pairs a pattern with its title/page extraction. Matchers run per
// line in slice order; the first match wins and a line yields at most one
// entry.
type matcher struct {
	id   PatternID
	re   *regexp.Regexp
	bare bool
}

var matchers = []matcher{
	{
		id: PatternChapterKeyword,
		re: regexp.MustCompile(`^(?i)(chapter\s+\d+[.:]?\s+\S.*?)[\s.·\-]*\s(\d+)$`),
	},
	{
		id: PatternNumberedSection,
		re: regexp.MustCompile(`^(\d+(?:\.\d+)+\s+\S.*?)[\s.·\-]*\s(\d+)$`),
	},
	{
		id: PatternKeywordOnly,
		re: regexp.MustCompile(`^(?i)((?:introduction|conclusion|appendix|bibliography|index|glossary|preface|foreword|prologue|epilogue|references|acknowledge?ments)\b.*?)[\s.·\-]*\s(\d+)$`),
	},
	{
		id: PatternDottedLeader,
		re: regexp.MustCompile(`^(.+?)\s*(?:[.·\-]\s*){2,}(\d+)$`),
	},
	{
		id:   PatternBare,
		re:   regexp.MustCompile(`^(.+?)\s+(\d+)$`),
		bare: true,
	},
}

// leaderCutset holds the punctuation trimmed from title edges: leader dots
// and dashes plus bullet decorations common in extracted TOC text.
const leaderCutset = " \t.·•‐‑‒–—-_"

// cleanTitle strips control characters and trims leader punctuation from
// both ends of a candidate title.
func cleanTitle(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Trim(s, leaderCutset)
}
