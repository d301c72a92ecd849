package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const statusLabelWidth = 20

// checkLine is one row of a doctor section.
type checkLine struct {
	label   string
	kind    statusKind
	message string
}

// checkSection groups related rows under a titled header.
type checkSection struct {
	title string
	lines []checkLine
}

func (s *checkSection) add(label string, kind statusKind, message string) {
	s.lines = append(s.lines, checkLine{label: label, kind: kind, message: message})
}

// checkReport accumulates doctor sections and tallies problems.
type checkReport struct {
	sections []*checkSection
}

func (r *checkReport) section(title string) *checkSection {
	s := &checkSection{title: title}
	r.sections = append(r.sections, s)
	return s
}

func (r *checkReport) count(kind statusKind) int {
	n := 0
	for _, s := range r.sections {
		for _, line := range s.lines {
			if line.kind == kind {
				n++
			}
		}
	}
	return n
}

func (r *checkReport) render(w io.Writer, colorize bool) {
	for i, s := range r.sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, header := range renderSectionHeader(s.title, colorize) {
			fmt.Fprintln(w, header)
		}
		for _, line := range s.lines {
			fmt.Fprintln(w, renderStatusLine(line.label, line.kind, line.message, colorize))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderSummary(r.count(statusError), r.count(statusWarn), colorize))
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + statusKindLabel(kind) + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", status)
	return paint(line, statusKindColor(kind), colorize)
}

// renderSectionHeader returns the title line and a rule of matching width.
func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{paint(line, ansiBlue, colorize), paint(rule, ansiBlue, colorize)}
}

func renderSummary(failures, warnings int, colorize bool) string {
	switch {
	case failures > 0:
		return paint(fmt.Sprintf("Not ready: %d problem(s), %d warning(s)", failures, warnings), ansiRed, colorize)
	case warnings > 0:
		return paint(fmt.Sprintf("Ready to render with %d warning(s)", warnings), ansiYellow, colorize)
	default:
		return paint("Ready to render", ansiGreen, colorize)
	}
}

func paint(text, color string, colorize bool) string {
	if !colorize || color == "" {
		return text
	}
	return color + text + ansiReset
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
