package engine

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"holdcut/internal/subtitle"
)

// MinVisibleDuration is the shortest span a directive is shown for. Directives
// from malformed transcription timing are stretched to it.
const MinVisibleDuration = 0.05

// Style controls how overlay text is drawn.
type Style struct {
	Font           string
	FontSize       int
	WordColor      string
	HighlightColor string
	OutlineColor   string
	OutlineWidth   int
}

// DefaultStyle mirrors the configuration defaults.
func DefaultStyle() Style {
	return Style{
		Font:           "Arial",
		FontSize:       120,
		WordColor:      "white",
		HighlightColor: "yellow",
		OutlineColor:   "black",
		OutlineWidth:   2,
	}
}

const (
	styleLine       = "Line"
	styleBackground = "Background"
	styleHighlight  = "Highlight"
)

// WriteASS renders directives as an ASS script sized to width x height.
// Text is centered on screen.
func WriteASS(w io.Writer, directives []subtitle.Directive, style Style, width, height int) error {
	word, err := subtitle.ParseColor(style.WordColor)
	if err != nil {
		return fmt.Errorf("word color: %w", err)
	}
	highlight, err := subtitle.ParseColor(style.HighlightColor)
	if err != nil {
		return fmt.Errorf("highlight color: %w", err)
	}
	outline, err := subtitle.ParseColor(style.OutlineColor)
	if err != nil {
		return fmt.Errorf("outline color: %w", err)
	}
	font := strings.TrimSpace(style.Font)
	if font == "" {
		font = DefaultStyle().Font
	}
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "[Script Info]\nScriptType: v4.00+\nPlayResX: %d\nPlayResY: %d\nWrapStyle: 0\nScaledBorderAndShadow: yes\n\n", width, height)
	bw.WriteString("[V4+ Styles]\n")
	bw.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	for _, s := range []struct {
		name    string
		primary string
	}{
		{styleLine, word},
		{styleBackground, word},
		{styleHighlight, highlight},
	} {
		fmt.Fprintf(bw, "Style: %s,%s,%d,%s,%s,%s,&H00000000,0,0,0,0,100,100,0,0,1,%d,0,5,40,40,0,1\n",
			s.name, font, style.FontSize, s.primary, s.primary, outline, style.OutlineWidth)
	}

	bw.WriteString("\n[Events]\n")
	bw.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, d := range directives {
		start := d.Start
		if math.IsNaN(start) || start < 0 {
			start = 0
		}
		duration := d.Duration
		if math.IsNaN(duration) || duration < MinVisibleDuration {
			duration = MinVisibleDuration
		}
		fmt.Fprintf(bw, "Dialogue: %d,%s,%s,%s,,0,0,0,,%s\n",
			d.Layer, assTime(start), assTime(start+duration), styleFor(d.Role), escapeText(d.Content))
	}
	return bw.Flush()
}

func styleFor(role subtitle.Role) string {
	switch role {
	case subtitle.RoleBackground:
		return styleBackground
	case subtitle.RoleHighlight:
		return styleHighlight
	default:
		return styleLine
	}
}

// assTime formats seconds as H:MM:SS.cc.
func assTime(seconds float64) string {
	cs := int64(math.Round(seconds * 100))
	if cs < 0 {
		cs = 0
	}
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

func escapeText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "{", "(")
	text = strings.ReplaceAll(text, "}", ")")
	text = strings.ReplaceAll(text, "\r\n", "\\N")
	return strings.ReplaceAll(text, "\n", "\\N")
}
