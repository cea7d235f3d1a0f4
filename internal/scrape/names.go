package scrape

import (
	"regexp"
	"strings"
)

var numberPrefixRe = regexp.MustCompile(`^\d+\.\s*`)

// ParseSurahNames picks the chapter name out of the page's menu trigger
// texts. The triggers also carry language and source selectors, so the
// chapter entry is identified heuristically: it starts with an "N." ordinal
// or contains "Al-" or "Surah". The entry reads "N. English - Arabic"; the
// split is on " - " rather than every hyphen because most transliterated
// names contain one ("Al-Baqarah").
func ParseSurahNames(texts []string) (english, arabic string) {
	for _, raw := range texts {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		if !strings.Contains(t, "Al-") && !strings.Contains(t, "Surah") && !numberPrefixRe.MatchString(t) {
			continue
		}

		t = numberPrefixRe.ReplaceAllString(t, "")
		parts := strings.SplitN(t, " - ", 2)
		english = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			arabic = strings.TrimSpace(parts[1])
		}
		return english, arabic
	}
	return "", ""
}
