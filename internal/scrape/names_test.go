package scrape

import (
	"log/slog"
	"testing"
)

func TestParseSurahNames(t *testing.T) {
	t.Run("ordinal entry with both names", func(t *testing.T) {
		en, ar := ParseSurahNames([]string{"English", "Ghamidi", "1. Al-Fatihah - الفاتحة"})
		if en != "Al-Fatihah" || ar != "الفاتحة" {
			t.Errorf("got %q / %q", en, ar)
		}
	})

	t.Run("hyphenated transliteration survives the split", func(t *testing.T) {
		en, ar := ParseSurahNames([]string{"2. Al-Baqarah - البقرة"})
		if en != "Al-Baqarah" {
			t.Errorf("english = %q, hyphen in name was mangled", en)
		}
		if ar != "البقرة" {
			t.Errorf("arabic = %q", ar)
		}
	})

	t.Run("no arabic half", func(t *testing.T) {
		en, ar := ParseSurahNames([]string{"Surah Yasin"})
		if en != "Surah Yasin" || ar != "" {
			t.Errorf("got %q / %q", en, ar)
		}
	})

	t.Run("no matching entry", func(t *testing.T) {
		en, ar := ParseSurahNames([]string{"English", "Urdu", ""})
		if en != "" || ar != "" {
			t.Errorf("got %q / %q, want empty", en, ar)
		}
	})
}

func TestSurahURL(t *testing.T) {
	s := New(DefaultConfig(), slog.Default(), nil)
	got := s.SurahURL(36)
	want := "https://www.javedahmadghamidi.com/quran?chapter=36&paragraph=1&type=Ghamidi&language=en"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}
