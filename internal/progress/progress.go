// Package progress shares live pipeline status between the scraper and the
// read-only monitor process. The snapshot store is a narrow interface over a
// single overwrite-in-place JSON file at a well-known path, so it can be
// swapped for another transport without touching pipeline code.
package progress

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"time"
)

// Phase labels written into snapshots.
const (
	PhaseNavigating = "Navigating"
	PhaseProcessing = "Processing"
)

// Snapshot is one progress observation: where the scraper is right now.
type Snapshot struct {
	Surah           int       `json:"surah"`
	SurahName       string    `json:"surah_name,omitempty"`
	Status          string    `json:"status"`
	Paragraph       int       `json:"paragraph"`
	TotalParagraphs int       `json:"total_paragraphs"`
	Timestamp       time.Time `json:"timestamp"`
}

// Reporter publishes snapshots. Implementations must be best-effort: a failed
// write is logged and swallowed, never surfaced to the pipeline.
type Reporter interface {
	Report(s Snapshot)
}

// Reader retrieves the latest snapshot. A (nil, nil) return means no snapshot
// has been written yet; consumers must tolerate that.
type Reader interface {
	Read() (*Snapshot, error)
}

// FileStore implements Reporter and Reader over one JSON file that is
// rewritten in place on every report.
type FileStore struct {
	Path string
	Log  *slog.Logger
}

func NewFileStore(path string, log *slog.Logger) *FileStore {
	if log == nil {
		log = slog.Default()
	}
	return &FileStore{Path: path, Log: log}
}

func (f *FileStore) Report(s Snapshot) {
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	data, err := json.Marshal(s)
	if err != nil {
		f.Log.Debug("marshal progress snapshot failed", "error", err)
		return
	}
	if err := os.WriteFile(f.Path, data, 0o644); err != nil {
		f.Log.Debug("write progress snapshot failed", "path", f.Path, "error", err)
	}
}

func (f *FileStore) Read() (*Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		// A torn read mid-rewrite looks like corrupt JSON; treat it the
		// same as no snapshot.
		return nil, nil
	}
	return &s, nil
}

// NopReporter discards snapshots. Used by the static-source path, which has no
// long-running browser phase worth observing.
type NopReporter struct{}

func (NopReporter) Report(Snapshot) {}
