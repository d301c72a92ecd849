package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

var namedColors = map[string]string{
	"white":   "FFFFFF",
	"black":   "000000",
	"yellow":  "FFFF00",
	"red":     "FF0000",
	"green":   "00FF00",
	"blue":    "0000FF",
	"cyan":    "00FFFF",
	"magenta": "FF00FF",
	"orange":  "FFA500",
	"pink":    "FFC0CB",
	"purple":  "800080",
	"gray":    "808080",
	"grey":    "808080",
}

// ParseColor converts a color name or #RRGGBB value into the &H00BBGGRR form
// used by ASS scripts.
func ParseColor(value string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[cleaned]; ok {
		cleaned = hex
	}
	cleaned = strings.TrimPrefix(cleaned, "#")
	if len(cleaned) != 6 {
		return "", fmt.Errorf("parse color %q: expected a name or #RRGGBB", value)
	}
	if _, err := strconv.ParseUint(cleaned, 16, 32); err != nil {
		return "", fmt.Errorf("parse color %q: %w", value, err)
	}
	rgb := strings.ToUpper(cleaned)
	return "&H00" + rgb[4:6] + rgb[2:4] + rgb[0:2], nil
}
