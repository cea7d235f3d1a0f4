// Package quran defines the structured chapter model shared by both
// extraction paths (the browser scraper and the PDF-text parser), plus the
// lexical helpers that split raw chapter text into verse-level records.
package quran

// Surah is one fully extracted chapter, ready for ingestion.
//
// Verses arrive either grouped into Paragraphs (the dynamic web source renders
// the text paragraph by paragraph) or directly in Ayahs (the flat PDF text has
// no paragraph structure). Both slices may be used together; the store inserts
// paragraph-attached verses first.
type Surah struct {
	Number       int    `json:"number"`
	NameArabic   string `json:"name_arabic"`
	NameEnglish  string `json:"name_english"`
	Introduction string `json:"introduction,omitempty"`
	SourceURL    string `json:"source_url"`

	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
	Ayahs      []Ayah      `json:"ayahs,omitempty"`
}

// Paragraph groups consecutive verses as rendered on one page section.
// Index is 1-based and dense within the surah.
type Paragraph struct {
	Index        int    `json:"index"`
	SectionTitle string `json:"section_title,omitempty"`
	Ayahs        []Ayah `json:"ayahs"`
}

// Ayah is the smallest numbered textual unit. Number 0 means the boundary
// marker could not be read; the store assigns a sequential fallback number at
// insert time.
type Ayah struct {
	Number      int        `json:"number"`
	Arabic      string     `json:"arabic"`
	Translation string     `json:"translation"`
	Footnotes   []Footnote `json:"footnotes,omitempty"`
}

// Footnote is one numbered entry captured from a footnote dialog.
type Footnote struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
}

// VerseCount returns the total number of verses across paragraphs and
// top-level verses.
func (s *Surah) VerseCount() int {
	n := len(s.Ayahs)
	for _, p := range s.Paragraphs {
		n += len(p.Ayahs)
	}
	return n
}
