package quran

import (
	"strconv"
	"strings"
)

// digitValues maps the digit glyphs that appear inside verse boundary markers
// to their numeric value. The source mixes standard Arabic-Indic digits
// (U+0660..U+0669) with the Extended Arabic-Indic variant used for Urdu
// (U+06F0..U+06F9); several of the extended glyphs are visually identical to
// the standard ones but occupy different code points, so both ranges are
// mapped explicitly. ASCII digits pass through for completeness.
var digitValues = map[rune]rune{
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
	'0': '0', '1': '1', '2': '2', '3': '3', '4': '4',
	'5': '5', '6': '6', '7': '7', '8': '8', '9': '9',
}

// markerBrackets are the ornate parentheses (U+FD3F, U+FD3E) that enclose a
// verse number in the Arabic text.
const markerBrackets = "﴿﴾"

// MarkerNumber converts a boundary marker such as "﴿١٢﴾" to its integer verse
// number. Unmapped glyphs are passed through literally, which makes the final
// integer parse fail; that case returns 0, meaning "number unknown", and the
// caller assigns a sequential fallback instead of crashing.
func MarkerNumber(marker string) int {
	var b strings.Builder
	for _, r := range strings.Trim(marker, markerBrackets) {
		if d, ok := digitValues[r]; ok {
			b.WriteRune(d)
		} else {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
