package progress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Stats are the aggregate row counts the monitor polls from the store.
type Stats struct {
	Surahs        int64
	Ayahs         int64
	LatestExcerpt string
}

// StatsSource is the monitor's read-only view of the relational store.
type StatsSource interface {
	Counts(ctx context.Context) (Stats, error)
}

// Monitor renders a live progress view from persisted counts and the shared
// snapshot. It holds no write authority: it polls on a fixed interval and
// additionally refreshes when the snapshot file changes on disk.
type Monitor struct {
	Stats       StatsSource
	Snapshots   Reader
	Out         io.Writer
	Interval    time.Duration
	TotalSurahs int
	StatusPath  string // watched for immediate refresh; optional
	Log         *slog.Logger

	clearScreen bool
}

// NewMonitor builds a monitor with terminal screen clearing enabled.
func NewMonitor(stats StatsSource, snapshots Reader, out io.Writer, interval time.Duration, totalSurahs int, statusPath string, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{
		Stats:       stats,
		Snapshots:   snapshots,
		Out:         out,
		Interval:    interval,
		TotalSurahs: totalSurahs,
		StatusPath:  statusPath,
		Log:         log,
		clearScreen: true,
	}
}

// Run renders until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	var events chan fsnotify.Event
	if m.StatusPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err == nil {
			// Watch the directory: the file may not exist yet, and
			// rewrites can replace the inode.
			if err := watcher.Add(filepath.Dir(m.StatusPath)); err == nil {
				events = watcher.Events
			} else {
				m.Log.Debug("snapshot watch unavailable, polling only", "error", err)
			}
			defer watcher.Close()
		}
	}

	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	m.render(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.render(ctx)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Name == m.StatusPath && ev.Op.Has(fsnotify.Write|fsnotify.Create) {
				m.render(ctx)
			}
		}
	}
}

func (m *Monitor) render(ctx context.Context) {
	if m.clearScreen {
		fmt.Fprint(m.Out, "\033[2J\033[H")
	}
	fmt.Fprintln(m.Out, "Quran Scraper Progress Monitor")
	fmt.Fprintln(m.Out, "===============================")

	stats, statsErr := m.Stats.Counts(ctx)
	if statsErr != nil {
		fmt.Fprintf(m.Out, "store unavailable: %v\n", statsErr)
	} else {
		fmt.Fprintf(m.Out, "Surahs Completed: %d / %d\n", stats.Surahs, m.TotalSurahs)
		fmt.Fprintf(m.Out, "Ayahs Saved:      %d\n", stats.Ayahs)
	}

	fmt.Fprintln(m.Out, "-------------------------------")
	fmt.Fprintln(m.Out, "LIVE STATUS:")
	snap, err := m.Snapshots.Read()
	if err != nil {
		fmt.Fprintf(m.Out, "snapshot unreadable: %v\n", err)
	} else if snap == nil || snap.Surah == 0 {
		fmt.Fprintln(m.Out, "Waiting for new status...")
	} else {
		fmt.Fprintf(m.Out, "Current Surah:    %d (%s)\n", snap.Surah, snap.SurahName)
		fmt.Fprintf(m.Out, "Status:           %s\n", snap.Status)
		if snap.Paragraph > 0 && snap.TotalParagraphs > 0 {
			pct := snap.Paragraph * 100 / snap.TotalParagraphs
			fmt.Fprintf(m.Out, "Paragraph:        %d / %d (%d%%)\n", snap.Paragraph, snap.TotalParagraphs, pct)
			fmt.Fprintf(m.Out, "Progress:         %s\n", progressBar(pct))
		}
	}

	if statsErr == nil && stats.LatestExcerpt != "" {
		fmt.Fprintln(m.Out, "-------------------------------")
		fmt.Fprintln(m.Out, "Latest Ayah excerpt (from DB):")
		fmt.Fprintln(m.Out, excerpt(stats.LatestExcerpt, 100))
	}
	fmt.Fprintln(m.Out, "-------------------------------")
	fmt.Fprintln(m.Out, "Press Ctrl+C to exit monitor (scraper continues in background)")
}

func progressBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 5
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", 20-filled) + "]"
}

func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
