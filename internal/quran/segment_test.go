package quran

import "testing"

func TestSegmentAyahs(t *testing.T) {
	t.Run("three markers three segments", func(t *testing.T) {
		arabic := "الحمد لله رب العالمين ﴿٢﴾ الرحمن الرحيم ﴿٣﴾ مالك يوم الدين ﴿٤﴾"
		translation := "Praise belongs to God, Lord of all the worlds."

		ayahs := SegmentAyahs(arabic, translation, nil)
		if len(ayahs) != 3 {
			t.Fatalf("expected 3 ayahs, got %d", len(ayahs))
		}
		wantNums := []int{2, 3, 4}
		for i, a := range ayahs {
			if a.Number != wantNums[i] {
				t.Errorf("ayah %d: number = %d, want %d", i, a.Number, wantNums[i])
			}
			if a.Arabic == "" {
				t.Errorf("ayah %d: empty arabic text", i)
			}
			if a.Translation != translation {
				t.Errorf("ayah %d: translation not carried whole: %q", i, a.Translation)
			}
		}
	})

	t.Run("paragraph translation attached to every verse", func(t *testing.T) {
		arabic := "اهدنا الصراط المستقيم ﴿٦﴾ صراط الذين ﴿٧﴾"
		translation := "  Guide us on the straight path.  "

		ayahs := SegmentAyahs(arabic, translation, nil)
		if len(ayahs) != 2 {
			t.Fatalf("expected 2 ayahs, got %d", len(ayahs))
		}
		for i, a := range ayahs {
			if a.Translation != "Guide us on the straight path." {
				t.Errorf("ayah %d: translation = %q", i, a.Translation)
			}
		}
	})

	t.Run("paragraph footnotes shared by every verse", func(t *testing.T) {
		fns := []Footnote{{Index: 1, Content: "A note"}, {Index: 2, Content: "Another"}}
		arabic := "نص ١ ﴿١﴾ نص ٢ ﴿٢﴾"

		ayahs := SegmentAyahs(arabic, "t", fns)
		if len(ayahs) != 2 {
			t.Fatalf("expected 2 ayahs, got %d", len(ayahs))
		}
		for i, a := range ayahs {
			if len(a.Footnotes) != 2 {
				t.Errorf("ayah %d: got %d footnotes, want 2", i, len(a.Footnotes))
			}
		}
	})

	t.Run("zero markers long text falls back to one unnumbered verse", func(t *testing.T) {
		arabic := "بسم الله الرحمن الرحيم بلا علامات فاصلة"

		ayahs := SegmentAyahs(arabic, "translation", nil)
		if len(ayahs) != 1 {
			t.Fatalf("expected 1 fallback ayah, got %d", len(ayahs))
		}
		if ayahs[0].Number != 0 {
			t.Errorf("fallback number = %d, want 0 (unknown)", ayahs[0].Number)
		}
		if ayahs[0].Arabic != arabic {
			t.Errorf("fallback should carry the whole block, got %q", ayahs[0].Arabic)
		}
	})

	t.Run("zero markers short text yields nothing", func(t *testing.T) {
		if ayahs := SegmentAyahs("قصير", "t", nil); len(ayahs) != 0 {
			t.Errorf("expected no ayahs for trivial text, got %d", len(ayahs))
		}
	})

	t.Run("more markers than segments pairs up to the minimum", func(t *testing.T) {
		// Two adjacent markers leave only one non-empty segment.
		arabic := "نص واحد فقط هنا ﴿١﴾﴿٢﴾"
		ayahs := SegmentAyahs(arabic, "t", nil)
		if len(ayahs) != 1 {
			t.Fatalf("expected 1 ayah, got %d", len(ayahs))
		}
		if ayahs[0].Number != 1 {
			t.Errorf("number = %d, want 1", ayahs[0].Number)
		}
	})

	t.Run("unreadable marker keeps verse with unknown number", func(t *testing.T) {
		// Marker digits are valid for the regex but one glyph is swapped in
		// manually; the segment still pairs, the number comes back 0 only when
		// normalization fails. Here all glyphs map, so number is known.
		arabic := "نص تجريبي طويل بما يكفي ﴿۲۳﴾"
		ayahs := SegmentAyahs(arabic, "t", nil)
		if len(ayahs) != 1 || ayahs[0].Number != 23 {
			t.Fatalf("got %+v, want one ayah numbered 23", ayahs)
		}
	})
}
