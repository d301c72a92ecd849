package subtitle

import (
	"fmt"
	"io"
	"time"

	"github.com/asticode/go-astisub"
)

// WriteSRT writes lines as an SRT document. Lines are expected on the
// composite timeline already; an end before the start is written as a
// zero-length cue.
func WriteSRT(w io.Writer, lines []Line) error {
	subs := astisub.NewSubtitles()
	for _, line := range lines {
		text := Upper(line.Text())
		if text == "" {
			continue
		}
		start := seconds(line.Start())
		end := seconds(line.End())
		if end < start {
			end = start
		}
		subs.Items = append(subs.Items, &astisub.Item{
			StartAt: start,
			EndAt:   end,
			Lines:   []astisub.Line{{Items: []astisub.LineItem{{Text: text}}}},
		})
	}
	if len(subs.Items) == 0 {
		return nil
	}
	if err := subs.WriteToSRT(w); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

func seconds(value float64) time.Duration {
	if value < 0 {
		value = 0
	}
	return time.Duration(value * float64(time.Second)).Round(time.Millisecond)
}
