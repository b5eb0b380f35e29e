// Package split orchestrates one document run: extract TOC text, parse it,
// resolve chapter boundaries, and write one output PDF per range, falling
// back to fixed-size chunks when no usable TOC exists.
package split

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jackzampolin/pdfchunk/internal/pdf"
	"github.com/jackzampolin/pdfchunk/internal/plan"
	"github.com/jackzampolin/pdfchunk/internal/toc"
)

// TextExtractor provides page counts and per-page text from a source
// document.
type TextExtractor interface {
	PageCount(path string) (int, error)
	ExtractPages(path string, from, to int) ([]toc.Page, error)
}

// RangeWriter writes one page range of the source document to dst.
type RangeWriter interface {
	WriteRange(src, dst string, r plan.Range, docTitle string) error
}

// Outcome describes how a run produced its chunks.
type Outcome string

const (
	// OutcomeChapters: a TOC was found and chapter ranges were written.
	OutcomeChapters Outcome = "chapters"
	// OutcomeFallback: chapters were requested but no usable TOC existed,
	// so fixed-size chunks were written instead.
	OutcomeFallback Outcome = "fallback"
	// OutcomePages: fixed-size chunks were requested directly.
	OutcomePages Outcome = "pages"
)

// Request contains the parameters for splitting one document.
type Request struct {
	PDFPath     string
	OutputDir   string    // base directory; a per-book subdirectory is created inside (default: next to the input)
	Mode        plan.Mode // chapters or pages
	ChunkSize   int       // pages per chunk in pages mode and in fallback
	SearchDepth int       // pages scanned for a TOC
	PageOffset  int       // printed-to-physical page correction
	MaxFilename int       // sanitized filename byte bound (0 = default)

	Extractor TextExtractor // optional, defaults to pdf.Extractor
	Writer    RangeWriter   // optional, defaults to pdf.Writer
	Logger    *slog.Logger  // optional
}

// ChunkFile describes one written output file.
type ChunkFile struct {
	Path  string `json:"path" yaml:"path"`
	Title string `json:"title" yaml:"title"`
	Pages int    `json:"pages" yaml:"pages"`
}

// Result contains the result of a successful run.
type Result struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Outcome    Outcome        `json:"outcome" yaml:"outcome"`
	TotalPages int            `json:"total_pages" yaml:"total_pages"`
	OutputDir  string         `json:"output_dir" yaml:"output_dir"`
	Files      []ChunkFile    `json:"files" yaml:"files"`
	Warnings   []plan.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Validate checks the request and fills defaults. Invalid configuration is
// rejected before any document access.
func (r *Request) Validate() error {
	if r.PDFPath == "" {
		return fmt.Errorf("no input PDF provided")
	}
	if r.Mode == "" {
		r.Mode = plan.ModeChapters
	}
	if _, ok := plan.ParseMode(string(r.Mode)); !ok {
		return fmt.Errorf("unknown mode %q", r.Mode)
	}
	if r.ChunkSize == 0 {
		r.ChunkSize = 99
	}
	if r.ChunkSize < 1 {
		return plan.ErrInvalidChunkSize
	}
	if r.SearchDepth == 0 {
		r.SearchDepth = 25
	}
	if r.SearchDepth < 1 {
		return fmt.Errorf("search depth must be at least 1")
	}
	return nil
}

func (r *Request) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Request) extractor() TextExtractor {
	if r.Extractor != nil {
		return r.Extractor
	}
	return &pdf.Extractor{Logger: r.Logger}
}

// BuildPlan computes the chunk plan for the request without writing any
// files. Returns the plan, the outcome it implies, and the document page
// count.
func BuildPlan(ctx context.Context, req *Request) (*plan.Plan, Outcome, int, error) {
	if err := req.Validate(); err != nil {
		return nil, "", 0, err
	}
	if _, err := os.Stat(req.PDFPath); err != nil {
		return nil, "", 0, fmt.Errorf("input not found: %s", req.PDFPath)
	}

	log := req.logger()
	ext := req.extractor()

	total, err := ext.PageCount(req.PDFPath)
	if err != nil {
		return nil, "", 0, err
	}
	if total < 1 {
		return nil, "", 0, fmt.Errorf("document has no pages")
	}
	log.Debug("opened document", "file", filepath.Base(req.PDFPath), "pages", total)

	if req.Mode == plan.ModePages {
		ranges, err := plan.FixedRanges(total, req.ChunkSize)
		if err != nil {
			return nil, "", 0, err
		}
		return &plan.Plan{Mode: plan.ModePages, Ranges: ranges}, OutcomePages, total, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, "", 0, err
	}

	depth := req.SearchDepth
	if depth > total {
		depth = total
	}
	pages, err := ext.ExtractPages(req.PDFPath, 1, depth)
	if err != nil {
		return nil, "", 0, err
	}

	entries, err := toc.Parse(pages, total)
	if err != nil {
		if errors.Is(err, toc.ErrNotFound) {
			log.Warn("no table of contents found, falling back to fixed-size chunks",
				"search_depth", depth)
			return fallbackPlan(total, req.ChunkSize, plan.Warning{
				Reason: "no table of contents detected",
			})
		}
		return nil, "", 0, err
	}
	log.Info("found table of contents", "entries", len(entries))

	p, err := plan.Resolve(entries, total, req.PageOffset)
	if err != nil {
		if errors.Is(err, plan.ErrUnresolvable) {
			log.Warn("no usable chapter ranges, falling back to fixed-size chunks")
			return fallbackPlan(total, req.ChunkSize, plan.Warning{
				Reason: "table of contents found but no valid chapter ranges survived",
			})
		}
		return nil, "", 0, err
	}
	for _, w := range p.Warnings {
		log.Warn("dropped TOC entry", "page", w.Page, "title", w.Title, "reason", w.Reason)
	}
	return p, OutcomeChapters, total, nil
}

func fallbackPlan(total, chunkSize int, w plan.Warning) (*plan.Plan, Outcome, int, error) {
	ranges, err := plan.FixedRanges(total, chunkSize)
	if err != nil {
		return nil, "", 0, err
	}
	p := &plan.Plan{
		Mode:     plan.ModePages,
		Fallback: true,
		Ranges:   ranges,
		Warnings: []plan.Warning{w},
	}
	return p, OutcomeFallback, total, nil
}

// Run builds the plan for the request and writes each range to its own PDF,
// in ascending chapter order. Files for a run land in a per-book directory
// derived from the input filename.
func Run(ctx context.Context, req *Request) (*Result, error) {
	p, outcome, total, err := BuildPlan(ctx, req)
	if err != nil {
		return nil, err
	}

	log := req.logger()
	writer := req.Writer
	if writer == nil {
		writer = &pdf.Writer{Producer: Producer()}
	}

	stem := DeriveTitle(req.PDFPath)
	outDir := deriveOutputDir(req, stem)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := &Result{
		RunID:      uuid.New().String(),
		Outcome:    outcome,
		TotalPages: total,
		OutputDir:  outDir,
		Warnings:   p.Warnings,
	}
	log.Info("splitting document",
		"run_id", res.RunID, "mode", outcome, "chunks", len(p.Ranges), "out", outDir)

	for i, r := range p.Ranges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := chunkFilename(p.Mode, stem, i, r.Title, req.MaxFilename)
		dst := filepath.Join(outDir, name)
		if err := writer.WriteRange(req.PDFPath, dst, r, stem); err != nil {
			return nil, fmt.Errorf("failed to write chunk %d: %w", i+1, err)
		}
		res.Files = append(res.Files, ChunkFile{Path: dst, Title: r.Title, Pages: r.Pages()})
		log.Info("created chunk", "file", name, "pages", r.Pages())
	}

	log.Info("split complete", "run_id", res.RunID, "files", len(res.Files))
	return res, nil
}

// chunkFilename builds the output filename for one range: a zero-padded
// sequence plus the sanitized title in chapter mode, or the book stem plus a
// chunk number in pages mode.
func chunkFilename(mode plan.Mode, stem string, i int, title string, maxBytes int) string {
	if mode == plan.ModeChapters {
		return fmt.Sprintf("%03d_%s.pdf", i+1, pdf.SanitizeFilename(title, maxBytes))
	}
	return fmt.Sprintf("%s_chunk_%03d.pdf", pdf.SanitizeFilename(stem, maxBytes), i+1)
}

// deriveOutputDir places the per-book output directory next to the input
// unless the request names a base directory. The suffix reflects the
// requested mode, so a fallback run still lands in the chapters directory.
func deriveOutputDir(req *Request, stem string) string {
	base := req.OutputDir
	if base == "" {
		base = filepath.Dir(req.PDFPath)
	}
	suffix := "_chapters"
	if req.Mode == plan.ModePages {
		suffix = "_pages"
	}
	return filepath.Join(base, stem+suffix)
}

// DeriveTitle extracts a book title from a PDF filename.
// e.g. "crusade-europe.pdf" -> "crusade-europe"
func DeriveTitle(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
