package render

import (
	"holdcut/internal/subtitle"
	"holdcut/internal/textutil"
	"holdcut/internal/timeline"
)

// DefaultOutputName is used when the frozen segment yields no usable words.
const DefaultOutputName = "final_output.mp4"

// outputNameWords is how many frozen-segment words name the output file.
const outputNameWords = 3

// SubtitlePlan is the grouped and placed subtitle content for one composite.
type SubtitlePlan struct {
	MainLines   []subtitle.Line      `json:"main_lines" yaml:"main_lines"`
	FrozenLines []subtitle.Line      `json:"frozen_lines" yaml:"frozen_lines"`
	Directives  []subtitle.Directive `json:"directives" yaml:"directives"`
}

// AllLines returns main lines followed by the shifted frozen lines.
func (p SubtitlePlan) AllLines() []subtitle.Line {
	out := make([]subtitle.Line, 0, len(p.MainLines)+len(p.FrozenLines))
	out = append(out, p.MainLines...)
	return append(out, p.FrozenLines...)
}

// BuildPlan groups both word lists, moves the frozen lines onto the composite
// timeline, and produces overlay directives.
func BuildPlan(mainWords, frozenWords []subtitle.Word, tl timeline.Timeline, mode subtitle.Mode, maxWords int) (SubtitlePlan, error) {
	mainLines := subtitle.Group(mainWords, maxWords)
	frozenLines := subtitle.ShiftLines(subtitle.Group(frozenWords, maxWords), tl.Offset(timeline.SegmentFrozen))
	directives, err := subtitle.Plan(mainLines, frozenLines, mode, tl.FreezePoint)
	if err != nil {
		return SubtitlePlan{}, err
	}
	return SubtitlePlan{MainLines: mainLines, FrozenLines: frozenLines, Directives: directives}, nil
}

// OutputName derives the output file name from the first frozen-segment
// words, upper-cased and joined with dashes.
func OutputName(frozenWords []subtitle.Word) string {
	texts := make([]string, 0, len(frozenWords))
	for _, w := range frozenWords {
		texts = append(texts, subtitle.Upper(w.Text))
	}
	slug := textutil.Slug(texts, outputNameWords)
	if slug == "" {
		return DefaultOutputName
	}
	return slug + ".mp4"
}
