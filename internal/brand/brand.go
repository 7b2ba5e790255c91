/*
Package brand provides normalization and ordering primitives for extracted
brand names: cleaning raw tokens mined out of markup or JSON payloads, and
building the deduplicated ranked list whose position encodes rank.
*/
package brand

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxRank is the number of ranking slots tracked per day.
	MaxRank = 100

	maxNameRunes = 30
	maxNameWords = 6
)

var (
	// Structural codes (A000688-style product codes, long digit runs) show
	// up wherever the page mixes identifiers into label fields.
	codePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Z]\d{4,}$`),
		regexp.MustCompile(`^\d{4,}$`),
	}
	noiseTagPattern = regexp.MustCompile(`\s*(브랜드\s*썸네일|로고.*|이미지.*|타이틀.*)$`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	hangulSyllable  = regexp.MustCompile(`^[가-힣]$`)
)

var stopWords = map[string]struct{}{
	"brand": {}, "logo": {}, "image": {}, "title": {},
	"브랜드": {}, "로고": {}, "이미지": {}, "타이틀": {},
}

// Normalize cleans a raw extracted token into a brand name. The second
// return value is false when the token is rejected: structural codes,
// digit-bearing strings, over-long strings, single Latin letters and generic
// placeholder labels are not brand names. Rejection is a normal outcome,
// not an error. Normalize is idempotent over its own accepted outputs.
func Normalize(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	s := stripInvisible(raw)
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	if s == "" {
		return "", false
	}

	// Trailing alt-text noise: "메디힐 브랜드 썸네일" -> "메디힐".
	s = strings.TrimSpace(noiseTagPattern.ReplaceAllString(s, ""))
	if s == "" {
		return "", false
	}

	for _, p := range codePatterns {
		if p.MatchString(s) {
			return "", false
		}
	}
	if strings.ContainsFunc(s, unicode.IsDigit) {
		return "", false
	}
	if utf8.RuneCountInString(s) > maxNameRunes || len(strings.Fields(s)) > maxNameWords {
		return "", false
	}
	if utf8.RuneCountInString(s) == 1 && !hangulSyllable.MatchString(s) {
		return "", false
	}
	if _, stop := stopWords[strings.ToLower(s)]; stop {
		return "", false
	}

	return s, true
}

// stripInvisible removes BOM and zero-width characters that survive HTML
// entity decoding and otherwise defeat exact-match deduplication.
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\uFEFF', '\u200B', '\u200C', '\u200D', '\u2060':
			return -1
		}
		return r
	}, s)
}
