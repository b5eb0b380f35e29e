package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfchunk/internal/cli"
	"github.com/jackzampolin/pdfchunk/internal/plan"
	"github.com/jackzampolin/pdfchunk/internal/split"
)

// planView is the structured output of the plan command.
type planView struct {
	File       string         `json:"file" yaml:"file"`
	TotalPages int            `json:"total_pages" yaml:"total_pages"`
	Outcome    split.Outcome  `json:"outcome" yaml:"outcome"`
	Ranges     []plan.Range   `json:"ranges" yaml:"ranges"`
	Warnings   []plan.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

var planCmd = &cobra.Command{
	Use:   "plan <book.pdf>",
	Short: "Show the chunk plan for a PDF without writing files",
	Long: `Compute and print the chunk plan for a PDF: the chapter ranges that a
split run would produce, or the fixed-size ranges it would fall back to.
Nothing is written. Useful for tuning --page-offset and --search-depth
before committing to a split.

Examples:
  pdfchunk plan book.pdf
  pdfchunk plan book.pdf --page-offset -1 -o json`,
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

		p, outcome, total, err := split.BuildPlan(cmd.Context(), req)
		if err != nil {
			return err
		}

		return cli.Output(planView{
			File:       args[0],
			TotalPages: total,
			Outcome:    outcome,
			Ranges:     p.Ranges,
			Warnings:   p.Warnings,
		})
	},
}

func init() {
	addSplitFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}
