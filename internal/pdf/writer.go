package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/jackzampolin/pdfchunk/internal/plan"
)

// Writer extracts page ranges from a source document into new PDF files.
type Writer struct {
	// Producer is written into each output's document metadata.
	Producer string
}

// WriteRange writes the pages covered by r into a new PDF at dst, carrying a
// single top-level bookmark and document metadata derived from the range
// title. The output is staged under a temporary name in the destination
// directory and renamed into place once complete, so a failed write never
// leaves a partial dst behind.
func (w *Writer) WriteRange(src, dst string, r plan.Range, docTitle string) error {
	if r.Start < 0 || r.End <= r.Start {
		return fmt.Errorf("invalid page range %d-%d", r.Start, r.End)
	}

	tmp := filepath.Join(filepath.Dir(dst), fmt.Sprintf(".pdfchunk-%s.pdf", uuid.New().String()))
	if err := w.writeTo(src, tmp, r, docTitle); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move chunk into place: %w", err)
	}
	return nil
}

func (w *Writer) writeTo(src, out string, r plan.Range, docTitle string) error {
	// pdfcpu selections are 1-indexed and inclusive.
	selection := []string{fmt.Sprintf("%d-%d", r.Start+1, r.End)}
	if err := api.TrimFile(src, out, selection, nil); err != nil {
		return fmt.Errorf("failed to extract pages %s: %w", selection[0], err)
	}

	bms := []pdfcpu.Bookmark{{
		Title:    r.Title,
		PageFrom: 1,
		PageThru: r.Pages(),
	}}
	if err := api.AddBookmarksFile(out, "", bms, true, nil); err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}

	props := map[string]string{
		"Title":    fmt.Sprintf("%s - %s", docTitle, r.Title),
		"Subject":  r.Title,
		"Producer": w.Producer,
	}
	if err := api.AddPropertiesFile(out, "", props, nil); err != nil {
		return fmt.Errorf("failed to set document metadata: %w", err)
	}
	return nil
}
