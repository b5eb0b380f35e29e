package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfchunk/internal/cli"
	"github.com/jackzampolin/pdfchunk/internal/config"
	"github.com/jackzampolin/pdfchunk/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	quiet        bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfchunk",
	Short: "Split PDFs into chapters or fixed-size chunks",
	Long: `pdfchunk splits a PDF into smaller PDFs, either at chapter boundaries
recovered from the printed table of contents or into fixed-size page chunks.

Chapter detection scans the first pages of the document for TOC-shaped lines
(dotted leaders, "Chapter N:" headings, numbered subsections) and derives one
output file per chapter, each carrying a bookmark and title metadata. When no
usable TOC is found the document is chunked by page count instead.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.pdfchunk/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "pdfchunk home directory (default: ~/.pdfchunk)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "structured output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&quiet, "quiet", "q", false, "only log warnings and errors",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the command logger, honoring --quiet.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads configuration from the default locations or --config.
func loadConfig() (*config.Manager, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cm, nil
}
