package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/owaisj/quranpipe/internal/progress"
	"github.com/owaisj/quranpipe/internal/store"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live terminal dashboard for a running extraction",
	Long: `Render a live dashboard combining database row counts with the status
file a concurrent scrape run publishes. The display refreshes on a poll
interval and immediately when the status file changes.

Run this in a second terminal alongside 'quranpipe scrape'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.Default()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}

		st, err := store.Open(cfg.DatabaseURL, cfg.Translator, log)
		if err != nil {
			return err
		}

		reader := progress.NewFileStore(cfg.StatusFile, log)
		m := progress.NewMonitor(st, reader, os.Stdout,
			cfg.Monitor.PollInterval, cfg.TotalSurahs, cfg.StatusFile, log)

		if err := m.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
