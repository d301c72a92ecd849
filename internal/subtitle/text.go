package subtitle

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Upper applies the fixed display casing to subtitle text.
func Upper(text string) string {
	// Casers keep internal state, so one is built per call.
	return cases.Upper(language.Und).String(strings.TrimSpace(text))
}
