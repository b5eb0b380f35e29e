package toc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sampleTOC = `Table of Contents

Introduction ............ 5
Chapter 1: Getting Started 12
Chapter 2: Advanced Topics 45
`

func TestParseText_SampleTOC(t *testing.T) {
	entries, err := ParseText(sampleTOC, 450)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Entry{
		{Title: "Introduction", Page: 5, Pattern: PatternKeywordOnly},
		{Title: "Chapter 1: Getting Started", Page: 12, Pattern: PatternChapterKeyword},
		{Title: "Chapter 2: Advanced Topics", Page: 45, Pattern: PatternChapterKeyword},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("got %+v, want %+v", entries, want)
	}
}

func TestParseText_RejectsBadPageNumbers(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"page zero", "Broken Entry ...... 0"},
		{"page beyond document", "Far Beyond ...... 900"},
		{"huge page", "Way Out There ...... 99999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "Contents\nChapter 1: Valid 10\nChapter 2: Also Valid 20\n" + tt.line + "\n"
			entries, err := ParseText(text, 100)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, e := range entries {
				if strings.Contains(tt.line, e.Title) {
					t.Errorf("rejected line produced entry %+v", e)
				}
			}
			if len(entries) != 2 {
				t.Errorf("expected 2 entries, got %d", len(entries))
			}
		})
	}
}

func TestParseText_NotFound(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no indicator", "Some Story 5\nAnother Story 9\n"},
		{"single entry", "Contents\nChapter 1: Alone 10\n"},
		{"prose with indicator", "The chapter begins with a storm that lasted days.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseText(tt.text, 500); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestParseText_BareRequiresStructuredMatch(t *testing.T) {
	bareOnly := "Contents\nGetting Around 7\nDeep Water 19\nThe Long Way Home 33\n"
	if _, err := ParseText(bareOnly, 100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bare-only lines should not form a TOC, got %v", err)
	}

	withAnchor := "Contents\nChapter 1: Arrival ...... 3\nGetting Around 7\nDeep Water 19\n"
	entries, err := ParseText(withAnchor, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[1].Pattern != PatternBare || entries[2].Pattern != PatternBare {
		t.Errorf("expected bare entries to be admitted alongside a structured match: %+v", entries)
	}
}

func TestParseText_KeywordOnlyEntriesAnchorTheWindow(t *testing.T) {
	text := "Contents\nIntroduction 5\nConclusion 210\n"
	entries, err := ParseText(text, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Entry{
		{Title: "Introduction", Page: 5, Pattern: PatternKeywordOnly},
		{Title: "Conclusion", Page: 210, Pattern: PatternKeywordOnly},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("got %+v, want %+v", entries, want)
	}
}

func TestParseText_DigitLeadingLines(t *testing.T) {
	text := "Contents\nChapter 2: Advanced 45\n1. Getting Started 12\n1 Background 3\n"
	entries, err := ParseText(text, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[1].Title != "1. Getting Started" || entries[1].Page != 12 {
		t.Errorf("numbered chapter line not parsed: %+v", entries[1])
	}
	if entries[2].Title != "1 Background" || entries[2].Page != 3 {
		t.Errorf("numbered chapter line not parsed: %+v", entries[2])
	}
}

func TestParseText_Idempotent(t *testing.T) {
	first, err := ParseText(sampleTOC, 450)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ParseText(sampleTOC, 450)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing is not idempotent: %+v vs %+v", first, second)
	}
}

func TestParseText_DropsRepeatedLines(t *testing.T) {
	text := "Contents\nChapter 1: Twice 10\nChapter 1: Twice 10\nChapter 2: Once 20\n"
	entries, err := ParseText(text, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected repeated line to collapse to one entry, got %+v", entries)
	}
}

func TestParse_JoinsPages(t *testing.T) {
	pages := []Page{
		{Index: 3, Text: "Table of Contents\nIntroduction ...... 5"},
		{Index: 4, Text: "Chapter 1: Getting Started 12\nChapter 2: Advanced Topics 45"},
	}
	entries, err := Parse(pages, 450)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries across pages, got %d", len(entries))
	}
	got := []int{entries[0].Page, entries[1].Page, entries[2].Page}
	want := []int{5, 12, 45}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("page numbers: got %v, want %v", got, want)
	}
}

func TestParseText_TitlesAreClean(t *testing.T) {
	text := "Contents\n\tChapter 1: Tabs\tInside ...... 10\nChapter 2: Fine 20\n"
	entries, err := ParseText(text, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range entries {
		if e.Title == "" {
			t.Error("empty title survived parsing")
		}
		for _, r := range e.Title {
			if r < 0x20 {
				t.Errorf("control character in title %q", e.Title)
			}
		}
		if e.Page < 1 || e.Page > 100 {
			t.Errorf("page %d out of bounds", e.Page)
		}
	}
}
