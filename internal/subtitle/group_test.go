package subtitle

import (
	"reflect"
	"testing"
)

func words(texts ...string) []Word {
	out := make([]Word, len(texts))
	for i, text := range texts {
		start := float64(i) * 0.5
		out[i] = Word{Text: text, Start: start, End: start + 0.4}
	}
	return out
}

func lineTexts(lines []Line) [][]string {
	out := make([][]string, len(lines))
	for i, line := range lines {
		for _, w := range line.Words {
			out[i] = append(out[i], w.Text)
		}
	}
	return out
}

func TestGroupEmptyInput(t *testing.T) {
	if lines := Group(nil, 3); len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
}

func TestGroupPolicy(t *testing.T) {
	tests := []struct {
		name     string
		words    []string
		maxWords int
		want     [][]string
	}{
		{
			name:     "closes at max words",
			words:    []string{"a", "b", "c", "d", "e"},
			maxWords: 2,
			want:     [][]string{{"a", "b"}, {"c", "d"}, {"e"}},
		},
		{
			name:     "punctuation closes multi word line",
			words:    []string{"Hello,", "world.", "How", "are", "you?", "Fine"},
			maxWords: 10,
			want:     [][]string{{"Hello,", "world."}, {"How", "are", "you?"}, {"Fine"}},
		},
		{
			name:     "single punctuated word does not close",
			words:    []string{"Mr.", "Smith", "left"},
			maxWords: 10,
			want:     [][]string{{"Mr.", "Smith", "left"}},
		},
		{
			name:     "exclamation with surrounding whitespace",
			words:    []string{" wow", " nice! ", " more"},
			maxWords: 5,
			want:     [][]string{{" wow", " nice! "}, {" more"}},
		},
		{
			name:     "max words one",
			words:    []string{"one", "two."},
			maxWords: 1,
			want:     [][]string{{"one"}, {"two."}},
		},
		{
			name:     "non positive max treated as one",
			words:    []string{"x", "y"},
			maxWords: 0,
			want:     [][]string{{"x"}, {"y"}},
		},
		{
			name:     "duplicate words keep going until the real last word",
			words:    []string{"go", "go", "go"},
			maxWords: 5,
			want:     [][]string{{"go", "go", "go"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := lineTexts(Group(words(tc.words...), tc.maxWords))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Group() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGroupPartitionsInput(t *testing.T) {
	input := words("it", "was", "late.", "we", "left", "early!", "did", "you?", "no", "way", "ok.")
	for maxWords := 1; maxWords <= len(input)+1; maxWords++ {
		lines := Group(input, maxWords)
		if got := Flatten(lines); !reflect.DeepEqual(got, input) {
			t.Fatalf("max=%d: flattened lines differ from input: %v", maxWords, got)
		}
		for i, line := range lines {
			if len(line.Words) == 0 {
				t.Fatalf("max=%d: line %d is empty", maxWords, i)
			}
			if len(line.Words) > maxWords {
				t.Fatalf("max=%d: line %d has %d words", maxWords, i, len(line.Words))
			}
		}
	}
}

func TestLineBoundsAndText(t *testing.T) {
	line := Line{Words: []Word{{Text: " is", Start: 0, End: 0.3}, {Text: " great ", Start: 0.3, End: 0.8}}}
	if line.Start() != 0 || line.End() != 0.8 {
		t.Fatalf("unexpected bounds %v..%v", line.Start(), line.End())
	}
	if line.Text() != "is great" {
		t.Fatalf("unexpected text %q", line.Text())
	}
	var empty Line
	if empty.Start() != 0 || empty.End() != 0 || empty.Text() != "" {
		t.Fatal("expected zero values for empty line")
	}
}
