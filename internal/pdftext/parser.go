// Package pdftext recovers the structured chapter model from a flat
// PDF-extracted text dump. The dump has no markup: chapter boundaries,
// introductions and verses are located with regex heuristics, and the handful
// of chapters that break the heuristics are handled through an explicit
// override table.
package pdftext

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/owaisj/quranpipe/internal/quran"
)

// KnowledgeBase is the raw extraction document: a single long text field.
type KnowledgeBase struct {
	FullText string `json:"fullText"`
}

// Load reads a knowledge-base JSON file and returns its text blob.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read knowledge base: %w", err)
	}
	var kb KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return "", fmt.Errorf("decode knowledge base: %w", err)
	}
	if kb.FullText == "" {
		return "", fmt.Errorf("knowledge base %s has no fullText", path)
	}
	return kb.FullText, nil
}

// firstSurahTitle is the known title of chapter 1. Its first occurrence in the
// dump is the table-of-contents entry; the body starts at the second.
const firstSurahTitle = "1. The Opening"

// override captures documented per-surah anomalies in the flat text. Keeping
// them in one table rather than inline conditionals makes the exceptions
// auditable.
type override struct {
	// noVerseBoundary marks a surah whose verse body starts without the
	// usual "1." token; its whole span is verse body and introduction gets
	// a fixed placeholder.
	noVerseBoundary bool
	introduction    string

	// endPhrase bounds the final surah's span so trailing index material is
	// excluded; endPhraseSlack bytes after the phrase are kept.
	endPhrase      string
	endPhraseSlack int

	// maxVerse discards verse headers above this number (stray numerals in
	// body text would otherwise match the verse header pattern).
	maxVerse int
}

var overrides = map[int]override{
	// At-Tawbah has no opening invocation and no "1." boundary.
	9: {
		noVerseBoundary: true,
		introduction:    "This is a declaration of dissociation...",
	},
	// An-Nas is the last surah: cut shortly after its closing phrase and
	// drop any header past its 6 verses.
	114: {
		endPhrase:      "jinn and human",
		endPhraseSlack: 30,
		maxVerse:       6,
	},
}

var (
	surahHeaderRe = regexp.MustCompile(`\n(\d+)\. ([^\n]+)\n\(([^)]+)\)`)
	verseHeaderRe = regexp.MustCompile(`(\d+)\.\s`)
	// firstVerseRe locates the intro/verse-body boundary: a "1." token
	// bounded by whitespace (or span start).
	firstVerseRe = regexp.MustCompile(`(?:^|\s)1\.\s`)

	pageBreakRe   = regexp.MustCompile(`\n\n-- \d+ of \d+ --\n\n`)
	pageMarkerRe  = regexp.MustCompile(`\s*--\s+\d+\s+of\s+\d+\s+--\s*`)
	footnoteRefRe = regexp.MustCompile(`\[\d+\]`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// Parser turns one text blob into the full ordered set of surahs.
type Parser struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{log: log}
}

type headerMatch struct {
	number     int
	name       string
	arabicName string
	start, end int

	// dup marks a repeated chapter number. Duplicate headers emit nothing,
	// but they still bound the spans around them so their body text is
	// dropped rather than absorbed into the preceding chapter.
	dup bool
}

// Parse extracts every surah from the blob. A surah that yields no verses is
// still emitted (introduction only) so the output set never drops a chapter.
// The source argument is recorded as each surah's source identifier.
func (p *Parser) Parse(fullText, source string) ([]quran.Surah, error) {
	// Skip the table of contents: the body begins at the second occurrence
	// of the first surah's title.
	first := strings.Index(fullText, firstSurahTitle)
	if first < 0 {
		return nil, fmt.Errorf("start of text not found (missing %q)", firstSurahTitle)
	}
	second := strings.Index(fullText[first+1:], firstSurahTitle)
	if second < 0 {
		return nil, fmt.Errorf("second occurrence of %q not found", firstSurahTitle)
	}
	// Prepend a newline so the header pattern matches the title we sliced at.
	text := "\n" + fullText[first+1+second:]

	headers := p.scanHeaders(text)
	if len(headers) == 0 {
		return nil, fmt.Errorf("no surah headers found")
	}
	p.log.Info("located surah headers", "count", len(headers))

	surahs := make([]quran.Surah, 0, len(headers))
	for i, h := range headers {
		if h.dup {
			continue
		}
		contentStart := h.end
		contentEnd := len(text)
		if i+1 < len(headers) {
			contentEnd = headers[i+1].start
		}
		surahs = append(surahs, p.parseSurah(h, text[contentStart:contentEnd], source))
	}
	return surahs, nil
}

// scanHeaders finds all chapter headers in order. A repeated number is
// header-shaped text inside the body; it is kept (marked dup) because every
// match delimits the spans, only the first occurrence of a number emits a
// chapter.
func (p *Parser) scanHeaders(text string) []headerMatch {
	var headers []headerMatch
	seen := make(map[int]bool)
	for _, m := range surahHeaderRe.FindAllStringSubmatchIndex(text, -1) {
		num, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		h := headerMatch{
			number:     num,
			name:       strings.TrimSpace(text[m[4]:m[5]]),
			arabicName: strings.TrimSpace(text[m[6]:m[7]]),
			start:      m[0],
			end:        m[1],
		}
		if seen[num] {
			p.log.Warn("skipping duplicate surah header", "surah", num, "offset", m[0])
			h.dup = true
		}
		seen[num] = true
		headers = append(headers, h)
	}
	return headers
}

func (p *Parser) parseSurah(h headerMatch, content, source string) quran.Surah {
	ov := overrides[h.number]

	if ov.endPhrase != "" {
		if cut := strings.Index(strings.ToLower(content), ov.endPhrase); cut >= 0 {
			end := cut + ov.endPhraseSlack
			if end > len(content) {
				end = len(content)
			}
			content = content[:end]
		}
	}

	content = pageBreakRe.ReplaceAllString(content, " ")

	var intro, versesBlock string
	if loc := firstVerseRe.FindStringIndex(content); loc != nil {
		// Split right before the "1." token; step over the leading
		// whitespace the pattern may have consumed.
		idx := loc[0]
		if idx < len(content) && isSpace(content[idx]) {
			idx++
		}
		intro = content[:idx]
		versesBlock = content[idx:]
	} else if ov.noVerseBoundary {
		intro = ov.introduction
		versesBlock = content
	} else {
		p.log.Warn("no verse boundary found, emitting introduction only", "surah", h.number)
		intro = content
	}

	return quran.Surah{
		Number:       h.number,
		NameArabic:   h.arabicName,
		NameEnglish:  h.name,
		Introduction: cleanText(intro),
		SourceURL:    source,
		Ayahs:        p.parseVerses(h.number, versesBlock, ov),
	}
}

func (p *Parser) parseVerses(surahNum int, block string, ov override) []quran.Ayah {
	matches := verseHeaderRe.FindAllStringSubmatchIndex(block, -1)

	var ayahs []quran.Ayah
	for j, m := range matches {
		num, err := strconv.Atoi(block[m[2]:m[3]])
		if err != nil {
			continue
		}
		// A header past the surah's known verse count is a stray numeral;
		// it still bounds the previous verse's text but emits nothing.
		if ov.maxVerse > 0 && num > ov.maxVerse {
			p.log.Warn("discarding out-of-range verse header", "surah", surahNum, "verse", num)
			continue
		}

		end := len(block)
		if j+1 < len(matches) {
			end = matches[j+1][0]
		}
		text := cleanText(block[m[1]:end])

		// The flat source has a single text channel; translation mirrors it.
		ayahs = append(ayahs, quran.Ayah{
			Number:      num,
			Arabic:      text,
			Translation: text,
		})
	}
	return ayahs
}

// cleanText strips page markers, section separators and bracketed footnote
// references, then collapses all whitespace to single spaces.
func cleanText(s string) string {
	s = pageMarkerRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "***", "")
	s = footnoteRefRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
