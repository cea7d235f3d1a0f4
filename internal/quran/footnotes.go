package quran

import (
	"regexp"
	"strings"
)

// footnoteNumberRe matches the "1." style numbering the footnote dialog
// renders before each entry.
var footnoteNumberRe = regexp.MustCompile(`\d+\.`)

// ParseFootnotes splits raw footnote dialog text into ordered entries. The
// text is split on each numbered heading; empty segments are discarded and the
// survivors get 1-based ordinals in split order. The dialog always opens with
// its first entry's number, so the segment before the first match is empty and
// falls out with the other blanks.
func ParseFootnotes(raw string) []Footnote {
	var notes []Footnote
	for _, seg := range footnoteNumberRe.Split(raw, -1) {
		s := strings.TrimSpace(seg)
		if s == "" {
			continue
		}
		notes = append(notes, Footnote{Index: len(notes) + 1, Content: s})
	}
	return notes
}
