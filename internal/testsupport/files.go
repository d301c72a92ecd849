package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"holdcut/internal/subtitle"
)

// WriteFile fills the target path with size bytes of a repeating pattern.
// A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTranscript writes words as a single-segment WhisperX JSON file.
func WriteTranscript(t testing.TB, path string, words []subtitle.Word) {
	t.Helper()

	type word struct {
		Word  string  `json:"word"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}
	type segment struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Words []word  `json:"words"`
	}
	var seg segment
	for i, w := range words {
		if i == 0 {
			seg.Start = w.Start
		}
		seg.End = w.End
		seg.Words = append(seg.Words, word{Word: w.Text, Start: w.Start, End: w.End})
	}
	data, err := json.Marshal(map[string][]segment{"segments": {seg}})
	if err != nil {
		t.Fatalf("marshal transcript: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ScenarioWords returns the three-word "is great today." transcript.
func ScenarioWords() []subtitle.Word {
	return []subtitle.Word{
		{Text: "is", Start: 0.0, End: 0.3},
		{Text: "great", Start: 0.3, End: 0.8},
		{Text: "today.", Start: 0.8, End: 1.5},
	}
}
