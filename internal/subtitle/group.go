package subtitle

import "strings"

// DefaultMaxWords is the line length used when no limit is configured.
const DefaultMaxWords = 2

// Group partitions words into lines. A pending line closes once it holds
// maxWords words, once a word ending in '.', '?' or '!' lands on a line that
// already has another word, or at the final word. maxWords below 1 is treated
// as 1. The result covers every input word exactly once, in order.
func Group(words []Word, maxWords int) []Line {
	if len(words) == 0 {
		return nil
	}
	if maxWords < 1 {
		maxWords = 1
	}

	lines := make([]Line, 0, len(words)/maxWords+1)
	pending := make([]Word, 0, maxWords)
	last := len(words) - 1
	for i, w := range words {
		pending = append(pending, w)
		full := len(pending) >= maxWords
		sentence := endsSentence(w.Text) && len(pending) > 1
		if full || sentence || i == last {
			lines = append(lines, Line{Words: pending})
			pending = make([]Word, 0, maxWords)
		}
	}
	return lines
}

func endsSentence(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '?', '!':
		return true
	}
	return false
}
