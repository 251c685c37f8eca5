package format

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// ASCII strips Vietnamese diacritics so text can be drawn with fonts that only
// cover ASCII ("Nguyễn Văn Đức" becomes "Nguyen Van Duc"). Runes with no ASCII
// base are dropped.
func ASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, dReplacer.Replace(s))
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// Slug lowercases s, folds diacritics and keeps only [a-z0-9].
func Slug(s string) string {
	folded := strings.ToLower(ASCII(s))
	var builder strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
