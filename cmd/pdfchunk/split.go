package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfchunk/internal/config"
	"github.com/jackzampolin/pdfchunk/internal/plan"
	"github.com/jackzampolin/pdfchunk/internal/split"
)

var (
	splitMode      string
	splitSize      int
	splitDepth     int
	splitOffset    int
	splitOutputDir string
)

var splitCmd = &cobra.Command{
	Use:   "split <book.pdf>",
	Short: "Split a PDF into chapter or fixed-size PDFs",
	Long: `Split a PDF into one output file per chapter, or into fixed-size page
chunks.

In chapters mode (the default) the first pages of the document are scanned
for a table of contents. When one is found, each entry becomes an output PDF
named NNN_<chapter title>.pdf with a bookmark and title metadata; when none
is found the run falls back to fixed-size chunks.

Printed page numbers rarely line up exactly with physical PDF pages because
covers and front matter shift the numbering. Use --page-offset to correct
for your document; the offset is never guessed.

Examples:
  pdfchunk split book.pdf                      # split by chapters
  pdfchunk split book.pdf --mode pages         # 99-page chunks
  pdfchunk split book.pdf --mode pages -s 50   # 50-page chunks
  pdfchunk split book.pdf --page-offset -1     # printed page 1 is physical page 0
  pdfchunk split book.pdf --output-dir ./out   # custom output base`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := loadConfig()
		if err != nil {
			return err
		}
		req, err := buildRequest(cmd, cm.Get(), args[0])
		if err != nil {
			return err
		}

		res, err := split.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		if !quiet {
			fmt.Printf("Created %d files in %s\n", len(res.Files), res.OutputDir)
			if res.Outcome == split.OutcomeFallback {
				fmt.Println("No table of contents was found; fixed-size chunks were written instead.")
			}
		}
		return nil
	},
}

// buildRequest merges config file values with any flags set on cmd.
func buildRequest(cmd *cobra.Command, cfg *config.Config, pdfPath string) (*split.Request, error) {
	req := &split.Request{
		PDFPath:     pdfPath,
		OutputDir:   cfg.OutputDir,
		Mode:        plan.Mode(cfg.Mode),
		ChunkSize:   cfg.ChunkSize,
		SearchDepth: cfg.SearchDepth,
		PageOffset:  cfg.PageOffset,
		MaxFilename: cfg.MaxFilename,
		Logger:      newLogger(),
	}
	flags := cmd.Flags()
	if flags.Changed("mode") {
		req.Mode = plan.Mode(splitMode)
	}
	if flags.Changed("size") {
		req.ChunkSize = splitSize
	}
	if flags.Changed("search-depth") {
		req.SearchDepth = splitDepth
	}
	if flags.Changed("page-offset") {
		req.PageOffset = splitOffset
	}
	if flags.Changed("output-dir") {
		req.OutputDir = splitOutputDir
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func addSplitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&splitMode, "mode", "chapters", "chunking mode: chapters or pages")
	cmd.Flags().IntVarP(&splitSize, "size", "s", 99, "pages per chunk (pages mode and fallback)")
	cmd.Flags().IntVar(&splitDepth, "search-depth", 25, "pages scanned for a table of contents")
	cmd.Flags().IntVar(&splitOffset, "page-offset", 0, "printed-to-physical page number correction")
	cmd.Flags().StringVar(&splitOutputDir, "output-dir", "", "base directory for output (default: next to input)")
}

func init() {
	addSplitFlags(splitCmd)
	rootCmd.AddCommand(splitCmd)
}
