package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/owaisj/quranpipe/internal/cli"
	"github.com/owaisj/quranpipe/internal/progress"
	"github.com/owaisj/quranpipe/internal/scrape"
	"github.com/owaisj/quranpipe/internal/store"
)

var (
	scrapeStart    int
	scrapeEnd      int
	scrapeHeadless bool
)

// scrapeSummary is rendered at the end of a run via the -o flag.
type scrapeSummary struct {
	Scraped    int           `json:"scraped" yaml:"scraped"`
	AyahsSaved int           `json:"ayahs_saved" yaml:"ayahs_saved"`
	Failed     []int         `json:"failed,omitempty" yaml:"failed,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Extract surahs from the live site into Postgres",
	Long: `Drive a headless browser through the source site chapter by chapter,
extract each surah's structured content, and persist it.

Each chapter is saved in its own transaction, so an interrupted run leaves
completed chapters intact and a re-run converges to the same state. A chapter
that fails to scrape or save is logged and skipped; the run continues.

Examples:
  quranpipe scrape                       # All 114 surahs
  quranpipe scrape --start 36 --end 36   # A single surah
  quranpipe scrape --headless=false      # Watch the browser work`,
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

		end := scrapeEnd
		if end == 0 {
			end = cfg.TotalSurahs
		}
		if scrapeStart < 1 || end < scrapeStart {
			return errors.New("invalid surah range")
		}

		st, err := store.Open(cfg.DatabaseURL, cfg.Translator, log)
		if err != nil {
			return err
		}
		if err := st.EnsureSchema(ctx); err != nil {
			return err
		}

		headless := scrapeHeadless
		if !cmd.Flags().Changed("headless") {
			headless = cfg.Scrape.Headless
		}

		// One browser session serves the whole run.
		browserCtx, cancel := scrape.NewBrowser(ctx, headless)
		defer cancel()

		reporter := progress.NewFileStore(cfg.StatusFile, log)
		scraper := scrape.New(cfg.ScraperConfig(), log, reporter)

		summary := scrapeSummary{}
		started := time.Now()

		for number := scrapeStart; number <= end; number++ {
			if ctx.Err() != nil {
				log.Info("run interrupted", "next_surah", number)
				break
			}

			su, err := scraper.ScrapeSurah(browserCtx, number)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info("run interrupted", "surah", number)
					break
				}
				log.Error("scrape failed", "surah", number, "error", err)
				summary.Failed = append(summary.Failed, number)
				continue
			}

			saved, err := st.SaveSurah(ctx, su)
			if err != nil {
				log.Error("save failed", "surah", number, "error", err)
				summary.Failed = append(summary.Failed, number)
				continue
			}

			log.Info("surah saved", "surah", number, "name", su.NameEnglish, "ayahs", saved)
			summary.Scraped++
			summary.AyahsSaved += saved
		}

		summary.Duration = time.Since(started).Round(time.Second)
		return cli.Output(summary)
	},
}

func init() {
	scrapeCmd.Flags().IntVar(&scrapeStart, "start", 1, "First surah number to scrape")
	scrapeCmd.Flags().IntVar(&scrapeEnd, "end", 0, "Last surah number to scrape (default: total_surahs)")
	scrapeCmd.Flags().BoolVar(&scrapeHeadless, "headless", true, "Run the browser headless")
	rootCmd.AddCommand(scrapeCmd)
}
