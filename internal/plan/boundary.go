package plan

import (
	"fmt"
	"sort"

	"github.com/jackzampolin/pdfchunk/internal/toc"
)

// Resolve turns parsed TOC entries into a contiguous chapter plan.
//
// Entries sharing a printed page number are deduplicated (first in scan order
// wins), the survivors sorted ascending, and each printed number shifted by
// pageOffset to a physical page index. The default offset of 0 assumes a
// single front-matter sheet, so printed page N sits at physical index N;
// documents with more or less front matter need a caller-supplied offset.
// Each chapter ends where the next begins; the last runs to totalPages.
//
// Entries that map outside the document or produce an empty range are dropped
// with a warning rather than failing the run. Returns ErrUnresolvable when
// nothing survives.
func Resolve(entries []toc.Entry, totalPages, pageOffset int) (*Plan, error) {
	p := &Plan{Mode: ModeChapters}

	seen := make(map[int]bool)
	kept := make([]toc.Entry, 0, len(entries))
	for _, e := range entries {
		if seen[e.Page] {
			p.Warnings = append(p.Warnings, Warning{
				Page:   e.Page,
				Title:  e.Title,
				Reason: "duplicate page number, keeping first occurrence",
			})
			continue
		}
		seen[e.Page] = true
		kept = append(kept, e)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Page < kept[j].Page })

	type adjusted struct {
		title string
		page  int // printed, for warnings
		start int // physical
	}
	adj := make([]adjusted, 0, len(kept))
	for _, e := range kept {
		start := e.Page + pageOffset
		if start < 0 || start >= totalPages {
			p.Warnings = append(p.Warnings, Warning{
				Page:   e.Page,
				Title:  e.Title,
				Reason: fmt.Sprintf("adjusted start %d outside document of %d pages", start, totalPages),
			})
			continue
		}
		adj = append(adj, adjusted{title: e.Title, page: e.Page, start: start})
	}

	for i, a := range adj {
		end := totalPages
		if i+1 < len(adj) {
			end = adj[i+1].start
		}
		if a.start >= end {
			p.Warnings = append(p.Warnings, Warning{
				Page:   a.page,
				Title:  a.title,
				Reason: "empty page range",
			})
			continue
		}
		p.Ranges = append(p.Ranges, Range{Title: a.title, Start: a.start, End: end})
	}

	if len(p.Ranges) == 0 {
		return nil, ErrUnresolvable
	}
	return p, nil
}
