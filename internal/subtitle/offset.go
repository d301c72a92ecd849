package subtitle

// ShiftWord returns a copy of w with both timestamps moved by delta seconds.
func ShiftWord(w Word, delta float64) Word {
	w.Start += delta
	w.End += delta
	return w
}

// ShiftLine returns a copy of line with every word moved by delta seconds.
// The input line is not modified.
func ShiftLine(line Line, delta float64) Line {
	words := make([]Word, len(line.Words))
	for i, w := range line.Words {
		words[i] = ShiftWord(w, delta)
	}
	return Line{Words: words}
}

// ShiftLines applies ShiftLine to each line and returns a fresh slice.
func ShiftLines(lines []Line, delta float64) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = ShiftLine(line, delta)
	}
	return out
}
