package timeline

import (
	"errors"
	"fmt"
	"math"
)

// DefaultHoldTriggerOffset is how many seconds before the end of the source
// video the hold begins.
const DefaultHoldTriggerOffset = 2.0

// ErrInvalidTimeline is matched by every error Assemble returns.
var ErrInvalidTimeline = errors.New("invalid timeline")

// InvalidTimelineError describes why a timeline could not be assembled.
type InvalidTimelineError struct {
	Reason string
}

func (e *InvalidTimelineError) Error() string {
	return "invalid timeline: " + e.Reason
}

// Is reports whether target is ErrInvalidTimeline.
func (e *InvalidTimelineError) Is(target error) bool {
	return target == ErrInvalidTimeline
}

// Segment identifies which part of the composite a timed entity belongs to.
type Segment int

const (
	SegmentMain Segment = iota
	SegmentFrozen
	SegmentNone
)

func (s Segment) String() string {
	switch s {
	case SegmentMain:
		return "main"
	case SegmentFrozen:
		return "frozen"
	default:
		return "none"
	}
}

// Range is a half-open interval [Start, End) in seconds.
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration returns End - Start.
func (r Range) Duration() float64 {
	return r.End - r.Start
}

// Contains reports whether t lies in [Start, End).
func (r Range) Contains(t float64) bool {
	return t >= r.Start && t < r.End
}

// Timeline is the assembled layout of the composite.
type Timeline struct {
	FreezePoint    float64 `json:"freeze_point" yaml:"freeze_point"`
	FreezeDuration float64 `json:"freeze_duration" yaml:"freeze_duration"`
	Main           Range   `json:"main" yaml:"main"`
	Frozen         Range   `json:"frozen" yaml:"frozen"`
}

// Total returns the length of the composite in seconds.
func (t Timeline) Total() float64 {
	return t.Frozen.End
}

// SegmentAt classifies an absolute composite time.
func (t Timeline) SegmentAt(at float64) Segment {
	switch {
	case t.Main.Contains(at):
		return SegmentMain
	case t.Frozen.Contains(at):
		return SegmentFrozen
	default:
		return SegmentNone
	}
}

// Offset returns the shift applied to entities of seg before placement.
func (t Timeline) Offset(seg Segment) float64 {
	if seg == SegmentFrozen {
		return t.FreezePoint
	}
	return 0
}

// Assemble lays out the composite. The freeze point sits holdTriggerOffset
// seconds before the end of the source and the hold lasts as long as the
// hold audio.
func Assemble(originalDuration, holdAudioDuration, holdTriggerOffset float64) (Timeline, error) {
	for name, value := range map[string]float64{
		"original duration":   originalDuration,
		"hold audio duration": holdAudioDuration,
		"hold trigger offset": holdTriggerOffset,
	} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return Timeline{}, &InvalidTimelineError{Reason: fmt.Sprintf("%s is not a finite number", name)}
		}
	}
	if holdTriggerOffset < 0 {
		return Timeline{}, &InvalidTimelineError{Reason: fmt.Sprintf("hold trigger offset %.3fs is negative", holdTriggerOffset)}
	}
	freezePoint := originalDuration - holdTriggerOffset
	if freezePoint <= 0 {
		return Timeline{}, &InvalidTimelineError{
			Reason: fmt.Sprintf("source duration %.3fs is not longer than the %.3fs hold trigger offset", originalDuration, holdTriggerOffset),
		}
	}
	if holdAudioDuration <= 0 {
		return Timeline{}, &InvalidTimelineError{Reason: fmt.Sprintf("hold audio duration %.3fs must be positive", holdAudioDuration)}
	}
	return Timeline{
		FreezePoint:    freezePoint,
		FreezeDuration: holdAudioDuration,
		Main:           Range{Start: 0, End: freezePoint},
		Frozen:         Range{Start: freezePoint, End: freezePoint + holdAudioDuration},
	}, nil
}
