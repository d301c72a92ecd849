package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderSectionHeaderRuleMatchesTitle(t *testing.T) {
	lines := renderSectionHeader(" Directories ", false)
	if len(lines) != 2 {
		t.Fatalf("expected title and rule, got %q", lines)
	}
	if lines[0] != "== Directories ==" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Fatalf("rule %q does not match title width", lines[1])
	}

	colored := renderSectionHeader("Directories", true)
	if !strings.HasPrefix(colored[0], ansiBlue) || !strings.HasSuffix(colored[1], ansiReset) {
		t.Fatalf("expected colored header, got %q", colored)
	}
}

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "ffmpeg", false)
	if got != "  FFmpeg:              [OK] ffmpeg" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := renderStatusLine("uvx", statusError, "", false); !strings.HasSuffix(got, "[ERROR]") {
		t.Fatalf("unexpected line %q", got)
	}
	if got := renderStatusLine("Mode", statusInfo, "sequential", true); strings.Contains(got, "\x1b[") {
		t.Fatalf("info lines should stay uncolored, got %q", got)
	}
}

func TestCheckReportSummary(t *testing.T) {
	var report checkReport
	tools := report.section("Dependencies")
	tools.add("FFmpeg", statusOK, "ffmpeg")
	tools.add("notify", statusWarn, "disabled")

	var buf bytes.Buffer
	report.render(&buf, false)
	if !strings.HasSuffix(buf.String(), "Ready to render with 1 warning(s)\n") {
		t.Fatalf("unexpected summary:\n%s", buf.String())
	}

	report.section("Directories").add("Work", statusError, "missing")
	if got := report.count(statusError); got != 1 {
		t.Fatalf("count(statusError) = %d", got)
	}
	if got := renderSummary(1, 1, false); got != "Not ready: 1 problem(s), 1 warning(s)" {
		t.Fatalf("unexpected summary %q", got)
	}
}
