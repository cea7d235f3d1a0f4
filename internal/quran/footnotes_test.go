package quran

import "testing"

func TestParseFootnotes(t *testing.T) {
	t.Run("two numbered entries", func(t *testing.T) {
		notes := ParseFootnotes("1. Alpha text 2. Beta text")
		if len(notes) != 2 {
			t.Fatalf("expected 2 footnotes, got %d", len(notes))
		}
		if notes[0].Index != 1 || notes[0].Content != "Alpha text" {
			t.Errorf("first note = %+v", notes[0])
		}
		if notes[1].Index != 2 || notes[1].Content != "Beta text" {
			t.Errorf("second note = %+v", notes[1])
		}
	})

	t.Run("multiline dialog text", func(t *testing.T) {
		raw := "1. First note spans\nthe line break.\n2. Second note."
		notes := ParseFootnotes(raw)
		if len(notes) != 2 {
			t.Fatalf("expected 2 footnotes, got %d", len(notes))
		}
		if notes[0].Content != "First note spans\nthe line break." {
			t.Errorf("first content = %q", notes[0].Content)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if notes := ParseFootnotes(""); len(notes) != 0 {
			t.Errorf("expected no footnotes, got %d", len(notes))
		}
	})

	t.Run("whitespace only segments are dropped", func(t *testing.T) {
		notes := ParseFootnotes("1.   2. Real content")
		if len(notes) != 1 {
			t.Fatalf("expected 1 footnote, got %d", len(notes))
		}
		if notes[0].Index != 1 || notes[0].Content != "Real content" {
			t.Errorf("note = %+v", notes[0])
		}
	})
}
