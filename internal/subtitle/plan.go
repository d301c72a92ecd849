package subtitle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned by Plan when neither segment has any lines.
var ErrEmptyInput = errors.New("subtitle plan: no lines to render")

// Mode selects how lines are turned into overlay directives.
type Mode int

const (
	// ModeSequential shows one static line at a time.
	ModeSequential Mode = iota
	// ModeProgressive shows a static line with each word emphasized as it is spoken.
	ModeProgressive
)

// ParseMode accepts "sequential"/"line_by_line" and "progressive"/"karaoke".
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sequential", "line_by_line", "line-by-line":
		return ModeSequential, nil
	case "progressive", "karaoke":
		return ModeProgressive, nil
	default:
		return 0, fmt.Errorf("subtitle mode: unsupported value %q", value)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeProgressive:
		return "progressive"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Role describes the visual purpose of a directive.
type Role int

const (
	RoleLine Role = iota
	RoleBackground
	RoleHighlight
)

func (r Role) String() string {
	switch r {
	case RoleLine:
		return "line"
	case RoleBackground:
		return "background"
	case RoleHighlight:
		return "highlight"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// MarshalText renders the role name for JSON and YAML output.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Directive is one timed text layer to draw over the composite. Layer is the
// z-order: a directive with a higher layer draws above lower ones.
type Directive struct {
	Content  string  `json:"content" yaml:"content"`
	Role     Role    `json:"role" yaml:"role"`
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
	Layer    int     `json:"layer" yaml:"layer"`
}

// End returns Start + Duration.
func (d Directive) End() float64 {
	return d.Start + d.Duration
}

// Plan converts MAIN and already-shifted FROZEN lines into overlay directives.
// MAIN directives come first. Timing values are forwarded as-is, including
// non-positive durations; clamping is left to the renderer. freezePoint is
// accepted for callers that track the composite layout and never changes the
// output.
func Plan(main, frozen []Line, mode Mode, freezePoint float64) ([]Directive, error) {
	if len(main) == 0 && len(frozen) == 0 {
		return nil, ErrEmptyInput
	}
	p := planner{}
	switch mode {
	case ModeSequential:
		p.sequential(main)
		p.sequential(frozen)
	case ModeProgressive:
		p.progressive(main)
		p.progressive(frozen)
	default:
		return nil, fmt.Errorf("subtitle plan: unsupported mode %s", mode)
	}
	return p.out, nil
}

// CountDirectives reports how many directives Plan emits for lines in mode.
func CountDirectives(lines []Line, mode Mode) int {
	if mode != ModeProgressive {
		return len(lines)
	}
	n := len(lines)
	for _, line := range lines {
		n += len(line.Words)
	}
	return n
}

type planner struct {
	out []Directive
}

func (p *planner) emit(content string, role Role, start, duration float64) {
	p.out = append(p.out, Directive{
		Content:  content,
		Role:     role,
		Start:    start,
		Duration: duration,
		Layer:    len(p.out),
	})
}

func (p *planner) sequential(lines []Line) {
	for _, line := range lines {
		p.emit(Upper(line.Text()), RoleLine, line.Start(), line.Duration())
	}
}

func (p *planner) progressive(lines []Line) {
	for _, line := range lines {
		p.emit(Upper(line.Text()), RoleBackground, line.Start(), line.Duration())
		for _, w := range line.Words {
			p.emit(Upper(w.Text), RoleHighlight, w.Start, w.Duration())
		}
	}
}
