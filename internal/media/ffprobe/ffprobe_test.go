package ffprobe

import (
	"context"
	"errors"
	"math"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "r_frame_rate": "30/1", "avg_frame_rate": "30000/1001"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "in.mp4", "nb_streams": 2, "duration": "17.500000", "format_name": "mov,mp4"}
}`

func stubRunner(output string, err error) Runner {
	return func(context.Context, string, ...string) ([]byte, error) {
		return []byte(output), err
	}
}

func TestProberDuration(t *testing.T) {
	var gotArgs []string
	prober := New("").WithRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		if name != "ffprobe" {
			t.Fatalf("expected default binary, got %q", name)
		}
		gotArgs = args
		return []byte(sampleJSON), nil
	})
	seconds, err := prober.Duration(context.Background(), "in.mp4")
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if seconds != 17.5 {
		t.Fatalf("duration = %v, want 17.5", seconds)
	}
	if last := gotArgs[len(gotArgs)-1]; last != "in.mp4" {
		t.Fatalf("path should be last argument, got %q", last)
	}
}

func TestProberDurationMissing(t *testing.T) {
	prober := New("ffprobe").WithRunner(stubRunner(`{"streams":[],"format":{}}`, nil))
	if _, err := prober.Duration(context.Background(), "x.mp3"); !errors.Is(err, ErrNoDuration) {
		t.Fatalf("expected ErrNoDuration, got %v", err)
	}
}

func TestProberInspectFailure(t *testing.T) {
	prober := New("ffprobe").WithRunner(stubRunner("No such file", errors.New("exit status 1")))
	if _, err := prober.Inspect(context.Background(), "missing.mp4"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := prober.Inspect(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestResultHelpers(t *testing.T) {
	prober := New("ffprobe").WithRunner(stubRunner(sampleJSON, nil))
	result, err := prober.Inspect(context.Background(), "in.mp4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	video, ok := result.VideoStream()
	if !ok || video.Width != 1920 || video.Height != 1080 {
		t.Fatalf("unexpected video stream %+v", video)
	}
	if rate := video.FrameRate(); math.Abs(rate-29.97) > 0.01 {
		t.Fatalf("frame rate = %v", rate)
	}
	if !result.HasAudio() {
		t.Fatal("expected audio stream")
	}
}

func TestDurationFallsBackToStreams(t *testing.T) {
	result := Result{Streams: []Stream{{Duration: "3.0"}, {Duration: "4.5"}}}
	if got := result.DurationSeconds(); got != 4.5 {
		t.Fatalf("duration = %v, want 4.5", got)
	}
	if got := (Result{Format: Format{Duration: "bad"}}).DurationSeconds(); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
}

func TestFrameRateFallbacks(t *testing.T) {
	if got := (Stream{AvgFrameRate: "0/0", RFrameRate: "25/1"}).FrameRate(); got != 25 {
		t.Fatalf("frame rate = %v, want 25", got)
	}
	if got := (Stream{}).FrameRate(); got != 0 {
		t.Fatalf("frame rate = %v, want 0", got)
	}
}
