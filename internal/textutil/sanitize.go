package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// Slug joins the first limit non-empty words with dashes after stripping
// surrounding punctuation and unsafe characters. It returns "" when no word
// survives.
func Slug(words []string, limit int) string {
	parts := make([]string, 0, limit)
	for _, word := range words {
		if len(parts) == limit {
			break
		}
		cleaned := strings.TrimFunc(SanitizeFileName(word), func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSpace(r)
		})
		cleaned = strings.Join(strings.Fields(cleaned), "-")
		if cleaned == "" {
			continue
		}
		parts = append(parts, cleaned)
	}
	return strings.Join(parts, "-")
}
