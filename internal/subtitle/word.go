package subtitle

import "strings"

// Word is a single transcribed token with its timing in seconds.
type Word struct {
	Text  string  `json:"text" yaml:"text"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration returns End - Start without clamping.
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// Line is an ordered group of words displayed together.
type Line struct {
	Words []Word `json:"words" yaml:"words"`
}

// Start returns the first word's start time, or 0 for an empty line.
func (l Line) Start() float64 {
	if len(l.Words) == 0 {
		return 0
	}
	return l.Words[0].Start
}

// End returns the last word's end time, or 0 for an empty line.
func (l Line) End() float64 {
	if len(l.Words) == 0 {
		return 0
	}
	return l.Words[len(l.Words)-1].End
}

// Duration returns End - Start without clamping.
func (l Line) Duration() float64 {
	return l.End() - l.Start()
}

// Text joins the trimmed word texts with a single space.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		if text := strings.TrimSpace(w.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Flatten concatenates the words of lines in order.
func Flatten(lines []Line) []Word {
	var total int
	for _, line := range lines {
		total += len(line.Words)
	}
	words := make([]Word, 0, total)
	for _, line := range lines {
		words = append(words, line.Words...)
	}
	return words
}
