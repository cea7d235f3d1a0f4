package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/owaisj/quranpipe/internal/cli"
	"github.com/owaisj/quranpipe/internal/config"
	"github.com/owaisj/quranpipe/version"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "quranpipe",
	Short: "Quran extraction pipeline with browser scraping and PDF-text parsing",
	Long: `Quranpipe extracts the complete Quran text with translation into a
relational database from two independent sources.

The pipeline includes:
  - Browser-driven scraping of the dynamically rendered source site
  - Static parsing of a PDF-extracted text dump
  - Idempotent per-chapter persistence to Postgres
  - A live terminal monitor for long-running extraction jobs`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.quranpipe/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format and logging before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.SetOutputFormat(outputFormat)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the runtime configuration for a command.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
