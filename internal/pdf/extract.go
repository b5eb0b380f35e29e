// Package pdf wraps the byte-level PDF collaborators: per-page text
// extraction, page counting, and writing page ranges out as standalone
// documents with bookmarks and metadata.
package pdf

import (
	"fmt"
	"log/slog"

	pdftext "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jackzampolin/pdfchunk/internal/toc"
)

// Extractor reads page text from a source document.
type Extractor struct {
	Logger *slog.Logger // optional
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// PageCount returns the number of pages in the document at path.
func (e *Extractor) PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read page count: %w", err)
	}
	return count, nil
}

// ExtractPages returns plain text for physical pages [from, to] (1-indexed,
// inclusive), clamped to the document. A page whose text cannot be decoded
// yields an empty entry rather than failing the whole document; only opening
// the document is fatal.
func (e *Extractor) ExtractPages(path string, from, to int) ([]toc.Page, error) {
	f, r, err := pdftext.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for text extraction: %w", err)
	}
	defer f.Close()

	if n := r.NumPage(); to > n {
		to = n
	}
	if from < 1 {
		from = 1
	}

	var pages []toc.Page
	for i := from; i <= to; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, toc.Page{Index: i - 1})
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			e.logger().Debug("could not extract page text", "page", i, "error", err)
			text = ""
		}
		pages = append(pages, toc.Page{Index: i - 1, Text: text})
	}
	return pages, nil
}
