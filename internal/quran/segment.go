package quran

import (
	"regexp"
	"strings"
)

// markerRe matches one verse boundary marker: ornate brackets around digits
// from any of the accepted numeral systems.
var markerRe = regexp.MustCompile(`﴿[0-9\x{0660}-\x{0669}\x{06F0}-\x{06F9}]+﴾`)

// minUnmarkedLen is the shortest Arabic block that still produces a fallback
// verse when no boundary markers are found. Anything at or below this length
// is treated as layout noise and dropped.
const minUnmarkedLen = 10

// SegmentAyahs splits one paragraph's Arabic text into verse records using the
// boundary markers embedded in it.
//
// The i-th marker is paired with the i-th non-empty segment, up to
// min(markers, segments). The translation is the paragraph's whole translated
// block: the source does not segment translations per verse, so every verse in
// the paragraph carries the full paragraph translation. Likewise footnotes are
// captured per paragraph and attached to every verse.
//
// If no markers are found but the Arabic text is non-trivially long, a single
// verse with Number 0 (unknown) is emitted so unmarked content is never
// silently dropped.
func SegmentAyahs(arabic, translation string, footnotes []Footnote) []Ayah {
	markers := markerRe.FindAllString(arabic, -1)

	var segments []string
	for _, part := range markerRe.Split(arabic, -1) {
		if s := strings.TrimSpace(part); s != "" {
			segments = append(segments, s)
		}
	}

	n := len(markers)
	if len(segments) < n {
		n = len(segments)
	}

	var ayahs []Ayah
	for i := 0; i < n; i++ {
		ayahs = append(ayahs, Ayah{
			Number:      MarkerNumber(markers[i]),
			Arabic:      segments[i],
			Translation: strings.TrimSpace(translation),
			Footnotes:   footnotes,
		})
	}

	if len(ayahs) == 0 && len(arabic) > minUnmarkedLen {
		ayahs = append(ayahs, Ayah{
			Number:      0,
			Arabic:      strings.TrimSpace(arabic),
			Translation: strings.TrimSpace(translation),
			Footnotes:   footnotes,
		})
	}

	return ayahs
}
