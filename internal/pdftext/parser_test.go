package pdftext

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testBlob simulates a PDF extraction: a TOC reference to surah 1, then the
// body with surahs 1, 2, 3 (plus a duplicate 3 header inside body text), 9,
// and 114 followed by index material.
const testBlob = "Table of Contents\n" +
	"1. The Opening ..... page 3\n" +
	"\n" +
	"1. The Opening\n(Al-Fatihah)\n" +
	"This Meccan surah is a prayer.\n" +
	"1. In the Name of God. 2. Praise belongs [3] to God.\n\n-- 4 of 604 --\n\n*** 3. Master of the Day.\n" +
	"\n2. The Cow\n(Al-Baqarah)\n" +
	"Only prose without any verse boundary token in it at all.\n" +
	"\n3. The Family\n(Al-Imran)\n" +
	"Intro three.\n" +
	"1. Verse one of three. 2. Verse two.\n" +
	"\n3. The Family\n(Al-Imran)\n" +
	"Duplicate body.\n" +
	"\n9. Repentance\n(At-Tawbah)\n" +
	"A stern proclamation opens it. 2. Fight them. 3. God is with you.\n" +
	"\n114. Mankind\n(An-Nas)\n" +
	"Intro last.\n" +
	"1. Say: I seek refuge. 2. The King. 6. From the jinn and humans.\n" +
	"54. Stray numeral from the thematic index follows here with more text.\n"

func parseBlob(t *testing.T) map[int]struct {
	intro  string
	verses []int
} {
	t.Helper()
	p := New(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	surahs, err := p.Parse(testBlob, "test.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := make(map[int]struct {
		intro  string
		verses []int
	})
	for _, s := range surahs {
		if _, dup := out[s.Number]; dup {
			t.Fatalf("surah %d emitted twice", s.Number)
		}
		nums := make([]int, len(s.Ayahs))
		for i, a := range s.Ayahs {
			nums[i] = a.Number
		}
		out[s.Number] = struct {
			intro  string
			verses []int
		}{s.Introduction, nums}
	}
	return out
}

func TestParse(t *testing.T) {
	surahs := parseBlob(t)

	t.Run("all chapters emitted", func(t *testing.T) {
		for _, n := range []int{1, 2, 3, 9, 114} {
			if _, ok := surahs[n]; !ok {
				t.Errorf("surah %d missing from output", n)
			}
		}
	})

	t.Run("intro and verses split at first verse token", func(t *testing.T) {
		s := surahs[1]
		if s.intro != "This Meccan surah is a prayer." {
			t.Errorf("intro = %q", s.intro)
		}
		if len(s.verses) != 3 || s.verses[0] != 1 || s.verses[1] != 2 || s.verses[2] != 3 {
			t.Errorf("verses = %v, want [1 2 3]", s.verses)
		}
	})

	t.Run("verse text is cleaned", func(t *testing.T) {
		p := New(nil)
		all, err := p.Parse(testBlob, "test.json")
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range all {
			if s.Number != 1 {
				continue
			}
			got := s.Ayahs[1].Arabic
			if got != "Praise belongs to God." {
				t.Errorf("verse 2 text = %q (page markers, separators or refs not stripped)", got)
			}
			if s.Ayahs[1].Translation != got {
				t.Errorf("flat source must mirror text into translation")
			}
		}
	})

	t.Run("chapter without boundary still emitted intro-only", func(t *testing.T) {
		s := surahs[2]
		if len(s.verses) != 0 {
			t.Errorf("expected no verses, got %v", s.verses)
		}
		if s.intro == "" {
			t.Error("expected the whole span as introduction")
		}
	})

	t.Run("duplicate header deduplicated keeping first span", func(t *testing.T) {
		s := surahs[3]
		if s.intro != "Intro three." {
			t.Errorf("intro = %q, want the first occurrence's intro", s.intro)
		}
		// The duplicate header bounds the first span: its header line must
		// not be misread as a verse and its body must be dropped, not
		// absorbed into the chapter.
		if len(s.verses) != 2 || s.verses[0] != 1 || s.verses[1] != 2 {
			t.Errorf("verses = %v, want [1 2]", s.verses)
		}

		p := New(nil)
		all, err := p.Parse(testBlob, "test.json")
		if err != nil {
			t.Fatal(err)
		}
		for _, su := range all {
			if su.Number != 3 {
				continue
			}
			for _, a := range su.Ayahs {
				if strings.Contains(a.Arabic, "Duplicate body") {
					t.Errorf("duplicate span leaked into verse text: %q", a.Arabic)
				}
			}
		}
	})

	t.Run("no-invocation override", func(t *testing.T) {
		s := surahs[9]
		if s.intro != "This is a declaration of dissociation..." {
			t.Errorf("intro = %q, want the fixed placeholder", s.intro)
		}
		if len(s.verses) != 2 || s.verses[0] != 2 || s.verses[1] != 3 {
			t.Errorf("verses = %v, want [2 3]", s.verses)
		}
	})

	t.Run("final chapter truncation", func(t *testing.T) {
		s := surahs[114]
		for _, n := range s.verses {
			if n > 6 {
				t.Errorf("verse header %d should have been discarded", n)
			}
		}
		if len(s.verses) != 3 {
			t.Errorf("verses = %v, want [1 2 6]", s.verses)
		}
	})
}

func TestParseMissingStart(t *testing.T) {
	p := New(nil)
	if _, err := p.Parse("no recognizable content", "x"); err == nil {
		t.Fatal("expected error for blob without the opening title")
	}
	// A single occurrence is only the TOC reference; that is also an error.
	if _, err := p.Parse("1. The Opening and nothing else", "x"); err == nil {
		t.Fatal("expected error for blob with a single title occurrence")
	}
}

func TestLoad(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kb.json")
		if err := os.WriteFile(path, []byte(`{"fullText":"hello"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		text, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if text != "hello" {
			t.Errorf("text = %q", text)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kb.json")
		if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected error for empty fullText")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
