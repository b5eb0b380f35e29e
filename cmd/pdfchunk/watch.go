package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pdfchunk/internal/config"
	"github.com/jackzampolin/pdfchunk/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and split PDFs as they appear",
	Long: `Watch a directory and split every PDF that is created or moved into it,
using the configured mode. PDFs already present when the watcher starts are
processed first. Configuration is hot-reloaded, so edits to the config file
apply to subsequent documents without a restart.

Runs until interrupted.

Examples:
  pdfchunk watch ~/scans
  pdfchunk watch ~/scans --config ./pdfchunk.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()
		cm.OnChange(func(cfg *config.Config) {
			log.Info("configuration reloaded", "mode", cfg.Mode, "chunk_size", cfg.ChunkSize)
		})
		cm.WatchConfig()

		err = watch.Run(cmd.Context(), watch.Options{
			Dir:    args[0],
			Config: cm.Get,
			Logger: log,
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
