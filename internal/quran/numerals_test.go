package quran

import "testing"

func TestMarkerNumber(t *testing.T) {
	t.Run("arabic-indic digits", func(t *testing.T) {
		cases := map[string]int{
			"﴿١﴾":   1,
			"﴿٢﴾":   2,
			"﴿٩﴾":   9,
			"﴿٠﴾":   0, // zero alone is not a valid verse number
			"﴿١٢﴾":  12,
			"﴿٢٨٦﴾": 286,
		}
		for marker, want := range cases {
			if got := MarkerNumber(marker); got != want {
				t.Errorf("MarkerNumber(%q) = %d, want %d", marker, got, want)
			}
		}
	})

	t.Run("extended arabic-indic digits", func(t *testing.T) {
		cases := map[string]int{
			"﴿۱﴾":  1,
			"﴿۴﴾":  4,
			"﴿۶﴾":  6,
			"﴿۹﴾":  9,
			"﴿۱۱۴﴾": 114,
		}
		for marker, want := range cases {
			if got := MarkerNumber(marker); got != want {
				t.Errorf("MarkerNumber(%q) = %d, want %d", marker, got, want)
			}
		}
	})

	t.Run("full glyph table", func(t *testing.T) {
		standard := []rune("٠١٢٣٤٥٦٧٨٩")
		extended := []rune("۰۱۲۳۴۵۶۷۸۹")
		for v := 0; v <= 9; v++ {
			// Prefix with a nonzero digit so single zeros stay parseable.
			if got := MarkerNumber("﴿١" + string(standard[v]) + "﴾"); got != 10+v {
				t.Errorf("standard glyph %d parsed as %d", v, got-10)
			}
			if got := MarkerNumber("﴿۱" + string(extended[v]) + "﴾"); got != 10+v {
				t.Errorf("extended glyph %d parsed as %d", v, got-10)
			}
		}
	})

	t.Run("mixed numeral systems in one marker", func(t *testing.T) {
		// One extended digit followed by one standard digit.
		if got := MarkerNumber("﴿۲٣﴾"); got != 23 {
			t.Errorf("got %d, want 23", got)
		}
	})

	t.Run("unmapped glyph yields unknown", func(t *testing.T) {
		if got := MarkerNumber("﴿١ب﴾"); got != 0 {
			t.Errorf("got %d, want 0 for unparseable marker", got)
		}
	})

	t.Run("empty marker yields unknown", func(t *testing.T) {
		if got := MarkerNumber("﴿﴾"); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})
}
