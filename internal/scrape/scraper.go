// Package scrape drives a headless browser through one chapter page at a
// time. The target site renders everything client-side and lazy-loads
// paragraphs as the viewport scrolls, so extraction is an explicit state
// machine of bounded waits: navigate, wait for the content container, scroll
// until the page height settles, then walk the paragraph containers in order,
// opening and dismissing the footnote dialog where one exists.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"github.com/owaisj/quranpipe/internal/progress"
	"github.com/owaisj/quranpipe/internal/quran"
)

// Config tunes the per-chapter state machine. All waits are bounded.
type Config struct {
	BaseURL    string
	SourceType string
	Language   string

	NavigateTimeout  time.Duration
	NavigateAttempts uint
	NavigateDelay    time.Duration

	ContentTimeout    time.Duration
	ArabicWaitTimeout time.Duration

	// The page is considered settled after SettleChecks consecutive
	// observations of an unchanged scroll height, sampled every
	// SettleInterval, with ScrollTimeout as the hard bound.
	ScrollTimeout  time.Duration
	SettleInterval time.Duration
	SettleChecks   int

	IntroDialogTimeout    time.Duration
	FootnoteDialogTimeout time.Duration
}

// DefaultConfig mirrors the timings the source site needs in practice.
func DefaultConfig() Config {
	return Config{
		BaseURL:               "https://www.javedahmadghamidi.com/quran",
		SourceType:            "Ghamidi",
		Language:              "en",
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
	}
}

const paragraphSelector = "div.mt-2.font-normal"

// Scraper extracts one structured surah per call, reusing a single browser
// session across calls.
type Scraper struct {
	cfg      Config
	log      *slog.Logger
	reporter progress.Reporter
}

func New(cfg Config, log *slog.Logger, reporter progress.Reporter) *Scraper {
	if log == nil {
		log = slog.Default()
	}
	if reporter == nil {
		reporter = progress.NopReporter{}
	}
	return &Scraper{cfg: cfg, log: log, reporter: reporter}
}

// NewBrowser starts the headless browser session the scraper runs in. The
// returned context is passed to every ScrapeSurah call; cancel tears the
// browser down.
func NewBrowser(parent context.Context, headless bool) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// SurahURL builds the chapter URL, forcing the configured language regardless
// of browser locale.
func (s *Scraper) SurahURL(number int) string {
	return fmt.Sprintf("%s?chapter=%d&paragraph=1&type=%s&language=%s",
		s.cfg.BaseURL, number,
		url.QueryEscape(s.cfg.SourceType), url.QueryEscape(s.cfg.Language))
}

// ScrapeSurah runs the full state machine for one chapter. A paragraph that
// fails to extract is logged and skipped; only navigation exhausting its
// retries fails the chapter.
func (s *Scraper) ScrapeSurah(ctx context.Context, number int) (*quran.Surah, error) {
	pageURL := s.SurahURL(number)
	log := s.log.With("surah", number)
	log.Info("navigating", "url", pageURL)

	s.reporter.Report(progress.Snapshot{Surah: number, Status: progress.PhaseNavigating})

	if err := s.navigate(ctx, pageURL); err != nil {
		return nil, fmt.Errorf("navigate to surah %d: %w", number, err)
	}

	if err := s.waitForContent(ctx); err != nil {
		log.Warn("timeout waiting for paragraph container, content may be delayed")
	}
	if err := s.settleScroll(ctx); err != nil {
		return nil, fmt.Errorf("scroll surah %d: %w", number, err)
	}

	english, arabic := s.extractNames(ctx, log)
	intro := s.extractIntroduction(ctx, log)
	s.waitForArabic(ctx, log)

	count := s.paragraphCount(ctx, log)
	log.Info("found paragraphs", "count", count)

	su := &quran.Surah{
		Number:       number,
		NameArabic:   arabic,
		NameEnglish:  english,
		Introduction: intro,
		SourceURL:    pageURL,
	}

	for i := 0; i < count; i++ {
		if i == 0 || (i+1)%10 == 0 {
			log.Info("processing paragraph", "paragraph", i+1, "total", count)
		}
		s.reporter.Report(progress.Snapshot{
			Surah:           number,
			SurahName:       english,
			Status:          progress.PhaseProcessing,
			Paragraph:       i + 1,
			TotalParagraphs: count,
		})

		para, err := s.extractParagraph(ctx, i)
		if err != nil {
			log.Warn("paragraph extraction failed", "paragraph", i+1, "error", err)
			continue
		}
		// Ordinals are assigned on append so they stay dense when a
		// paragraph is skipped; DOM position only matters for logging.
		para.Index = len(su.Paragraphs) + 1
		su.Paragraphs = append(su.Paragraphs, *para)
	}

	log.Info("surah extracted", "name", english, "paragraphs", len(su.Paragraphs), "ayahs", su.VerseCount())
	return su, nil
}

func (s *Scraper) navigate(ctx context.Context, pageURL string) error {
	attempt := 0
	return retry.Do(
		func() error {
			attempt++
			nctx, cancel := context.WithTimeout(ctx, s.cfg.NavigateTimeout)
			defer cancel()
			if err := chromedp.Run(nctx, chromedp.Navigate(pageURL)); err != nil {
				s.log.Warn("navigation attempt failed", "attempt", attempt, "url", pageURL, "error", err)
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.cfg.NavigateAttempts),
		retry.Delay(s.cfg.NavigateDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

func (s *Scraper) waitForContent(ctx context.Context) error {
	wctx, cancel := context.WithTimeout(ctx, s.cfg.ContentTimeout)
	defer cancel()
	return chromedp.Run(wctx, chromedp.WaitVisible(paragraphSelector, chromedp.ByQuery))
}

// settleScroll forces scroll-to-bottom until the scrollable height stops
// growing for SettleChecks consecutive samples. A single no-growth sample is
// not enough: the page pauses mid-load, which would settle falsely.
func (s *Scraper) settleScroll(ctx context.Context) error {
	const scrollJS = `(() => {
		window.scrollTo(0, document.body.scrollHeight);
		return document.body.scrollHeight;
	})()`

	deadline := time.Now().Add(s.cfg.ScrollTimeout)
	lastHeight := -1
	stable := 0
	for time.Now().Before(deadline) {
		var height int
		if err := chromedp.Run(ctx, chromedp.Evaluate(scrollJS, &height)); err != nil {
			return err
		}
		if height == lastHeight {
			stable++
			if stable >= s.cfg.SettleChecks {
				return nil
			}
		} else {
			stable = 0
			lastHeight = height
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.SettleInterval):
		}
	}
	s.log.Warn("scroll settle timed out, proceeding with current content")
	return nil
}

func (s *Scraper) extractNames(ctx context.Context, log *slog.Logger) (english, arabic string) {
	const menuTextsJS = `Array.from(document.querySelectorAll('a.mat-mdc-menu-trigger')).map(e => e.textContent || '')`

	var texts []string
	if err := chromedp.Run(ctx, chromedp.Evaluate(menuTextsJS, &texts)); err != nil {
		log.Warn("metadata extraction failed", "error", err)
		return "", ""
	}
	return ParseSurahNames(texts)
}

func (s *Scraper) extractIntroduction(ctx context.Context, log *slog.Logger) string {
	const clickIntroJS = `(() => {
		for (const b of document.querySelectorAll('mat-card button')) {
			const t = (b.textContent || '').trim();
			if (t.includes('Introduction') || t.includes('تعارف')) { b.click(); return true; }
		}
		return false;
	})()`

	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(clickIntroJS, &clicked)); err != nil {
		log.Warn("introduction control lookup failed", "error", err)
		return ""
	}
	if !clicked {
		return ""
	}

	text, err := s.waitDialogText(ctx, s.cfg.IntroDialogTimeout)
	if err != nil {
		log.Warn("introduction dialog issue", "error", err)
		s.dismissDialog(ctx, 100*time.Millisecond)
		return ""
	}
	s.dismissDialog(ctx, 500*time.Millisecond)
	return strings.TrimSpace(text)
}

// waitForArabic blocks until the first Arabic block actually has text; the
// container can be attached to the DOM well before its content streams in.
func (s *Scraper) waitForArabic(ctx context.Context, log *slog.Logger) {
	const arabicReadyJS = `(() => {
		const el = document.querySelector('.cnt-ar');
		return !!el && el.innerText.length > 10;
	})()`

	deadline := time.Now().Add(s.cfg.ArabicWaitTimeout)
	for time.Now().Before(deadline) {
		var ready bool
		if err := chromedp.Run(ctx, chromedp.Evaluate(arabicReadyJS, &ready)); err != nil {
			log.Warn("arabic readiness check failed", "error", err)
			return
		}
		if ready {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(200 * time.Millisecond):
		}
	}
	log.Warn("wait for arabic text timed out, proceeding anyway")
}

func (s *Scraper) paragraphCount(ctx context.Context, log *slog.Logger) int {
	var count int
	js := fmt.Sprintf(`document.querySelectorAll('%s').length`, paragraphSelector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &count)); err != nil {
		log.Warn("paragraph count failed", "error", err)
		return 0
	}
	return count
}

// paragraphData is the per-container snapshot pulled out in one evaluation.
// The translation must come from the LTR-styled block: the RTL block is the
// Arabic source, and confusing the two corrupts the dataset silently.
type paragraphData struct {
	Section      string `json:"section"`
	Arabic       string `json:"arabic"`
	Translation  string `json:"translation"`
	HasFootnotes bool   `json:"hasFootnotes"`
}

func paragraphJS(i int) string {
	return fmt.Sprintf(`(() => {
		const p = document.querySelectorAll('div.mt-2.font-normal')[%d];
		if (!p) return null;
		const sec = p.querySelector('p.cnt-ur');
		const ar = p.querySelector('.cnt-ar');
		const tr = p.querySelector('div[style*="direction: ltr"]');
		let fn = false;
		for (const b of p.querySelectorAll('button')) {
			const t = b.textContent || '';
			if (t.includes('Footnotes') || t.includes('فوٹ نوٹ')) { fn = true; break; }
		}
		return {
			section: sec ? (sec.textContent || '').trim() : '',
			arabic: ar ? (ar.textContent || '') : '',
			translation: tr ? (tr.innerText || '') : '',
			hasFootnotes: fn
		};
	})()`, i)
}

func (s *Scraper) extractParagraph(ctx context.Context, i int) (*quran.Paragraph, error) {
	var pd *paragraphData
	if err := chromedp.Run(ctx, chromedp.Evaluate(paragraphJS(i), &pd)); err != nil {
		return nil, err
	}
	if pd == nil {
		return nil, fmt.Errorf("paragraph container %d not found", i+1)
	}
	if pd.Translation == "" {
		s.log.Debug("empty translation block", "paragraph", i+1)
	}

	var footnotes []quran.Footnote
	if pd.HasFootnotes {
		footnotes = s.extractFootnotes(ctx, i)
	}

	// The caller assigns the ordinal; i is only the DOM position.
	return &quran.Paragraph{
		SectionTitle: strings.TrimSpace(pd.Section),
		Ayahs:        quran.SegmentAyahs(pd.Arabic, pd.Translation, footnotes),
	}, nil
}

// extractFootnotes opens the paragraph's footnote dialog, captures its text
// and dismisses it. Every failure path degrades to "no footnotes" after a
// best-effort Escape so a stuck dialog cannot poison later paragraphs.
func (s *Scraper) extractFootnotes(ctx context.Context, i int) []quran.Footnote {
	clickJS := fmt.Sprintf(`(() => {
		const p = document.querySelectorAll('div.mt-2.font-normal')[%d];
		if (!p) return false;
		for (const b of p.querySelectorAll('button')) {
			const t = b.textContent || '';
			if (t.includes('Footnotes') || t.includes('فوٹ نوٹ')) {
				b.scrollIntoView({block: 'center'});
				b.click();
				return true;
			}
		}
		return false;
	})()`, i)

	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(clickJS, &clicked)); err != nil || !clicked {
		if err != nil {
			s.log.Warn("footnote button click failed", "paragraph", i+1, "error", err)
			s.dismissDialog(ctx, 100*time.Millisecond)
		}
		return nil
	}

	text, err := s.waitDialogText(ctx, s.cfg.FootnoteDialogTimeout)
	if err != nil {
		s.log.Warn("footnote dialog issue", "paragraph", i+1, "error", err)
		s.dismissDialog(ctx, 100*time.Millisecond)
		return nil
	}
	s.dismissDialog(ctx, 100*time.Millisecond)
	return quran.ParseFootnotes(text)
}

// waitDialogText polls for the shared material dialog until it carries text.
func (s *Scraper) waitDialogText(ctx context.Context, timeout time.Duration) (string, error) {
	const dialogTextJS = `(() => {
		const d = document.querySelector('div.mat-mdc-dialog-content');
		return d ? (d.innerText || '') : '';
	})()`

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		var text string
		if err := chromedp.Run(ctx, chromedp.Evaluate(dialogTextJS, &text)); err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return "", fmt.Errorf("dialog did not appear within %s", timeout)
}

func (s *Scraper) dismissDialog(ctx context.Context, pause time.Duration) {
	if err := chromedp.Run(ctx, chromedp.KeyEvent(kb.Escape), chromedp.Sleep(pause)); err != nil {
		s.log.Debug("dialog dismissal failed", "error", err)
	}
}
