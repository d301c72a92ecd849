package main

import (
	"testing"

	"holdcut/internal/testsupport"
)

func TestDoctorReady(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "== Dependencies ==\n------------------")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "2.000s")
	requireContains(t, out, "Ready to render")
}

func TestDoctorReportsMissingBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("PATH", t.TempDir())

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail without binaries")
	}
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "yt-dlp")
	requireContains(t, out, "Not ready: 4 problem(s), 0 warning(s)")
}
