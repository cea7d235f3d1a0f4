package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/owaisj/quranpipe/internal/cli"
	"github.com/owaisj/quranpipe/internal/pdftext"
	"github.com/owaisj/quranpipe/internal/store"
)

var parseDump string

type parseSummary struct {
	Parsed     int           `json:"parsed" yaml:"parsed"`
	AyahsSaved int           `json:"ayahs_saved" yaml:"ayahs_saved"`
	Failed     []int         `json:"failed,omitempty" yaml:"failed,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <knowledge-base.json>",
	Short: "Parse a PDF-extracted text dump into Postgres",
	Long: `Parse the flat text dump of a printed translation into structured
surahs and persist them. The input is a JSON file whose fullText field holds
the raw extracted text.

This source carries no Arabic or footnotes; it exists as an independent
cross-check of the scraped data. Chapters are saved one transaction each, so
a failed chapter does not roll back the rest.

Examples:
  quranpipe parse knowledge_base.json
  quranpipe parse knowledge_base.json --dump surahs.json   # Also write JSON`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := slog.Default()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}

		fullText, err := pdftext.Load(args[0])
		if err != nil {
			return err
		}

		surahs, err := pdftext.New(log).Parse(fullText, args[0])
		if err != nil {
			return err
		}
		log.Info("parsed chapters", "count", len(surahs))

		if parseDump != "" {
			data, err := json.MarshalIndent(surahs, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal dump: %w", err)
			}
			if err := os.WriteFile(parseDump, data, 0o644); err != nil {
				return fmt.Errorf("write dump: %w", err)
			}
			log.Info("wrote parsed dump", "path", parseDump)
		}

		st, err := store.Open(cfg.DatabaseURL, cfg.Translator, log)
		if err != nil {
			return err
		}
		if err := st.EnsureSchema(ctx); err != nil {
			return err
		}

		summary := parseSummary{}
		started := time.Now()

		for i := range surahs {
			su := &surahs[i]
			saved, err := st.SaveSurah(ctx, su)
			if err != nil {
				log.Error("save failed", "surah", su.Number, "error", err)
				summary.Failed = append(summary.Failed, su.Number)
				continue
			}
			log.Info("surah saved", "surah", su.Number, "name", su.NameEnglish, "ayahs", saved)
			summary.Parsed++
			summary.AyahsSaved += saved
		}

		summary.Duration = time.Since(started).Round(time.Millisecond)
		return cli.Output(summary)
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseDump, "dump", "", "Also write the parsed chapters to this JSON file")
	rootCmd.AddCommand(parseCmd)
}
