package quran

import "testing"

func TestVerseCount(t *testing.T) {
	s := &Surah{
		Paragraphs: []Paragraph{
			{Index: 1, Ayahs: []Ayah{{Number: 1}, {Number: 2}}},
			{Index: 2, Ayahs: []Ayah{{Number: 0}}},
		},
		Ayahs: []Ayah{{Number: 1}, {Number: 2}, {Number: 3}},
	}
	if got := s.VerseCount(); got != 6 {
		t.Errorf("VerseCount() = %d, want 6", got)
	}

	var empty Surah
	if got := empty.VerseCount(); got != 0 {
		t.Errorf("VerseCount() = %d for empty surah, want 0", got)
	}
}
