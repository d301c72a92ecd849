package audiosource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type fakeProber struct {
	duration float64
	err      error
	paths    []string
}

func (f *fakeProber) Duration(_ context.Context, path string) (float64, error) {
	f.paths = append(f.paths, path)
	return f.duration, f.err
}

func writingRunner(t *testing.T, calls *[][]string) CommandRunner {
	t.Helper()
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		if name != "yt-dlp" {
			t.Fatalf("unexpected binary %q", name)
		}
		*calls = append(*calls, args)
		template := args[slices.Index(args, "-o")+1]
		dest := filepath.Join(filepath.Dir(template), "hold_audio.mp3")
		return nil, os.WriteFile(dest, []byte("ID3"), 0o644)
	}
}

func TestFetchDownloadsAndProbes(t *testing.T) {
	dir := t.TempDir()
	prober := &fakeProber{duration: 3.5}
	var calls [][]string
	src := New(Options{SocketTimeout: 30, Retries: 3}, prober, nil).WithCommandRunner(writingRunner(t, &calls))

	audio, err := src.Fetch(context.Background(), " https://example.com/watch?v=abc ", dir)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if audio.Duration != 3.5 || audio.Path != filepath.Join(dir, "hold_audio.mp3") {
		t.Fatalf("unexpected audio %+v", audio)
	}
	if len(prober.paths) != 1 || prober.paths[0] != audio.Path {
		t.Fatalf("prober called with %v", prober.paths)
	}
	args := calls[0]
	if args[len(args)-1] != "https://example.com/watch?v=abc" {
		t.Fatalf("url should be last: %v", args)
	}
	for flag, want := range map[string]string{
		"-f":               "bestaudio/best",
		"--audio-format":   "mp3",
		"--audio-quality":  "192",
		"--socket-timeout": "30",
		"--retries":        "3",
	} {
		if got := args[slices.Index(args, flag)+1]; got != want {
			t.Fatalf("%s = %q, want %q", flag, got, want)
		}
	}
}

func TestFetchRejectsBadURL(t *testing.T) {
	src := New(Options{}, &fakeProber{duration: 1}, nil).WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
		t.Fatal("runner should not be called")
		return nil, nil
	})
	for _, raw := range []string{"", "ftp://example.com/a", "https://", "not a url"} {
		_, err := src.Fetch(context.Background(), raw, t.TempDir())
		if !errors.Is(err, ErrDownload) {
			t.Fatalf("Fetch(%q): expected ErrDownload, got %v", raw, err)
		}
	}
}

func TestFetchCommandFailure(t *testing.T) {
	src := New(Options{}, &fakeProber{duration: 1}, nil).WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte("[youtube] abc: Downloading\nERROR: Video unavailable"), errors.New("exit status 1")
	})
	_, err := src.Fetch(context.Background(), "https://example.com/v", t.TempDir())
	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected DownloadError, got %v", err)
	}
	if dlErr.URL != "https://example.com/v" || !errors.Is(err, ErrDownload) {
		t.Fatalf("unexpected error %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "ERROR: Video unavailable") {
		t.Fatalf("error should carry yt-dlp output: %q", got)
	}
}

func TestFetchNoOutputFile(t *testing.T) {
	src := New(Options{}, &fakeProber{duration: 1}, nil).WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, nil
	})
	if _, err := src.Fetch(context.Background(), "https://example.com/v", t.TempDir()); !errors.Is(err, ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
}

func TestFetchProbeFailure(t *testing.T) {
	var calls [][]string
	src := New(Options{}, &fakeProber{err: errors.New("no duration")}, nil).WithCommandRunner(writingRunner(t, &calls))
	if _, err := src.Fetch(context.Background(), "https://example.com/v", t.TempDir()); !errors.Is(err, ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
}
