package config

import "time"

// DefaultConfig returns the configuration used when nothing is overridden.
// The scrape timings match what the source site needs in practice.
func DefaultConfig() *Config {
	return &Config{
		Translator:  "Javed Ahmad Ghamidi",
		StatusFile:  "status.json",
		TotalSurahs: 114,
		Scrape: ScrapeConfig{
			BaseURL:               "https://www.javedahmadghamidi.com/quran",
			SourceType:            "Ghamidi",
			Language:              "en",
			Headless:              true,
			NavigateTimeout:       60 * time.Second,
			NavigateAttempts:      3,
			NavigateDelay:         2 * time.Second,
			ContentTimeout:        30 * time.Second,
			ArabicWaitTimeout:     10 * time.Second,
			ScrollTimeout:         90 * time.Second,
			SettleInterval:        100 * time.Millisecond,
			SettleChecks:          30,
			IntroDialogTimeout:    5 * time.Second,
			FootnoteDialogTimeout: 2 * time.Second,
		},
		Monitor: MonitorConfig{
			PollInterval: 5 * time.Second,
		},
	}
}
