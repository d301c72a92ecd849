package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofrs/flock"

	"holdcut/internal/audiosource"
	"holdcut/internal/logging"
	"holdcut/internal/media/engine"
	"holdcut/internal/media/ffprobe"
	"holdcut/internal/subtitle"
	"holdcut/internal/testsupport"
	"holdcut/internal/timeline"
)

type fakeProber struct {
	result ffprobe.Result
	err    error
}

func (f fakeProber) Inspect(context.Context, string) (ffprobe.Result, error) {
	return f.result, f.err
}

type fakeSource struct {
	duration float64
	err      error
}

func (f fakeSource) Fetch(_ context.Context, _ string, destDir string) (audiosource.Audio, error) {
	if f.err != nil {
		return audiosource.Audio{}, f.err
	}
	path := filepath.Join(destDir, "hold_audio.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		return audiosource.Audio{}, err
	}
	return audiosource.Audio{Path: path, Duration: f.duration}, nil
}

type fakeTranscriber struct {
	mu     sync.Mutex
	words  map[string][]subtitle.Word
	err    error
	called []string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath, _ string) ([]subtitle.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called = append(f.called, filepath.Base(audioPath))
	if f.err != nil {
		return nil, f.err
	}
	return f.words[filepath.Base(audioPath)], nil
}

type fakeEngine struct {
	mu         sync.Mutex
	splice     engine.SpliceRequest
	extracted  []float64
	directives []subtitle.Directive
	encodeErr  error
}

func (f *fakeEngine) Splice(_ context.Context, req engine.SpliceRequest) (engine.Clip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.splice = req
	return engine.Clip{
		Source:         req.Source,
		SourceHasAudio: req.SourceHasAudio,
		HoldAudio:      req.HoldAudio,
		FreezePoint:    req.FreezePoint,
		FreezeDuration: req.FreezeDuration,
		WorkDir:        req.WorkDir,
	}, nil
}

func (f *fakeEngine) Overlay(_ context.Context, clip engine.Clip, directives []subtitle.Directive) (engine.Clip, error) {
	f.directives = directives
	clip.Subtitles = filepath.Join(clip.WorkDir, "overlay.ass")
	return clip, nil
}

func (f *fakeEngine) Encode(_ context.Context, _ engine.Clip, dest string) error {
	if f.encodeErr != nil {
		return f.encodeErr
	}
	return os.WriteFile(dest, []byte("mp4"), 0o644)
}

func (f *fakeEngine) ExtractAudio(_ context.Context, _ string, start, duration float64, dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extracted = append(f.extracted, start, duration)
	return os.WriteFile(dest, []byte("RIFF"), 0o644)
}

func probeResult(duration string, withAudio bool) ffprobe.Result {
	result := ffprobe.Result{
		Format:  ffprobe.Format{Duration: duration},
		Streams: []ffprobe.Stream{{CodecType: "video", Width: 1080, Height: 1920}},
	}
	if withAudio {
		result.Streams = append(result.Streams, ffprobe.Stream{CodecType: "audio"})
	}
	return result
}

type harness struct {
	opts        Options
	prober      fakeProber
	source      fakeSource
	transcriber *fakeTranscriber
	media       *fakeEngine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return &harness{
		opts: Options{
			WorkDir:           cfg.Paths.WorkDir,
			OutputDir:         cfg.Paths.OutputDir,
			HoldTriggerOffset: timeline.DefaultHoldTriggerOffset,
			Mode:              subtitle.ModeSequential,
			MaxWords:          2,
		},
		prober: fakeProber{result: probeResult("10.0", true)},
		source: fakeSource{duration: 3},
		transcriber: &fakeTranscriber{words: map[string][]subtitle.Word{
			"main.wav": {
				{Text: "hello", Start: 0.5, End: 1.0},
				{Text: "world", Start: 1.0, End: 1.5},
			},
			"hold_audio.mp3": testsupport.ScenarioWords(),
		}},
		media: &fakeEngine{},
	}
}

func (h *harness) orchestrator() *Orchestrator {
	return NewOrchestrator(h.opts, h.prober, h.source, h.transcriber, h.media, logging.NewNop())
}

func (h *harness) run(t *testing.T, req Request) (Result, error) {
	t.Helper()
	if req.VideoPath == "" {
		req.VideoPath = filepath.Join(t.TempDir(), "in.mp4")
	}
	if req.AudioURL == "" {
		req.AudioURL = "https://example.com/watch?v=abc"
	}
	return h.orchestrator().Run(context.Background(), req)
}

func TestRunProducesNamedOutput(t *testing.T) {
	h := newHarness(t)
	h.opts.WriteSRT = true

	result, err := h.run(t, Request{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantOutput := filepath.Join(h.opts.OutputDir, "IS-GREAT-TODAY.mp4")
	if result.Output != wantOutput {
		t.Fatalf("output = %q, want %q", result.Output, wantOutput)
	}
	if data, err := os.ReadFile(wantOutput); err != nil || string(data) != "mp4" {
		t.Fatalf("output not published: %q (%v)", data, err)
	}
	if result.Timeline.FreezePoint != 8 || result.Timeline.FreezeDuration != 3 {
		t.Fatalf("unexpected timeline %+v", result.Timeline)
	}
	if result.RunID == "" {
		t.Fatal("expected run id")
	}

	if len(h.media.extracted) != 2 || h.media.extracted[0] != 0 || h.media.extracted[1] != 8 {
		t.Fatalf("main audio extraction = %v, want [0 8]", h.media.extracted)
	}
	if !h.media.splice.SourceHasAudio || h.media.splice.Width != 1080 || h.media.splice.FreezePoint != 8 {
		t.Fatalf("unexpected splice request %+v", h.media.splice)
	}

	directives := h.media.directives
	if len(directives) != 3 || result.Directives != 3 || result.Lines != 3 {
		t.Fatalf("unexpected directives %+v (result %+v)", directives, result)
	}
	wantContent := []string{"HELLO WORLD", "IS GREAT", "TODAY."}
	wantStart := []float64{0.5, 8.0, 8.8}
	for i, d := range directives {
		if d.Content != wantContent[i] || d.Start != wantStart[i] || d.Layer != i {
			t.Fatalf("directive %d = %+v", i, d)
		}
	}

	srt, err := os.ReadFile(result.SRTPath)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if !strings.Contains(string(srt), "00:00:08,800 --> 00:00:09,500") {
		t.Fatalf("srt missing shifted line:\n%s", srt)
	}

	entries, err := os.ReadDir(h.opts.WorkDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			t.Fatalf("run directory %s should be cleaned up", entry.Name())
		}
	}
}

func TestRunOutputOverride(t *testing.T) {
	h := newHarness(t)
	h.opts.KeepWork = true
	override := filepath.Join(t.TempDir(), "custom")

	result, err := h.run(t, Request{Output: override})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Output != override+".mp4" {
		t.Fatalf("output = %q", result.Output)
	}
	if _, err := os.Stat(result.WorkDir); err != nil {
		t.Fatalf("kept work dir missing: %v", err)
	}
}

func TestRunWithoutSourceAudio(t *testing.T) {
	h := newHarness(t)
	h.prober.result = probeResult("10.0", false)

	if _, err := h.run(t, Request{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.media.extracted) != 0 {
		t.Fatalf("no extraction expected, got %v", h.media.extracted)
	}
	if len(h.transcriber.called) != 1 || h.transcriber.called[0] != "hold_audio.mp3" {
		t.Fatalf("unexpected transcriptions %v", h.transcriber.called)
	}
	if h.media.splice.SourceHasAudio {
		t.Fatal("splice should know the source has no audio")
	}
	if len(h.media.directives) != 2 {
		t.Fatalf("expected only frozen directives, got %d", len(h.media.directives))
	}
}

func TestRunRejectsIncompleteRequest(t *testing.T) {
	h := newHarness(t)
	_, err := h.orchestrator().Run(context.Background(), Request{VideoPath: "in.mp4"})
	if !errors.Is(err, ErrInvalidRequest) || !strings.Contains(err.Error(), "audio url") {
		t.Fatalf("expected ErrInvalidRequest naming the audio url, got %v", err)
	}
}

func TestRunFailuresLeaveNoOutput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*testing.T, *harness)
		want   error
	}{
		{"source too short", func(t *testing.T, h *harness) { h.prober.result = probeResult("1.0", true) }, timeline.ErrInvalidTimeline},
		{"download fails", func(t *testing.T, h *harness) {
			h.source.err = &audiosource.DownloadError{URL: "u", Err: errors.New("404")}
		}, audiosource.ErrDownload},
		{"transcription fails", func(t *testing.T, h *harness) { h.transcriber.err = errors.New("model crashed") }, nil},
		{"nothing to render", func(t *testing.T, h *harness) { h.transcriber.words = nil }, subtitle.ErrEmptyInput},
		{"encode fails", func(t *testing.T, h *harness) {
			h.media.encodeErr = &engine.EncodeError{Dest: "x", Err: errors.New("exit 1")}
		}, engine.ErrEncode},
		{"probe has no duration", func(t *testing.T, h *harness) { h.prober.result = probeResult("", true) }, ffprobe.ErrNoDuration},
		{"subtitle sidecar cannot be written", func(t *testing.T, h *harness) {
			h.opts.WriteSRT = true
			blocked := filepath.Join(h.opts.OutputDir, "IS-GREAT-TODAY.srt")
			if err := os.MkdirAll(blocked, 0o755); err != nil {
				t.Fatal(err)
			}
		}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			tc.mutate(t, h)
			_, err := h.run(t, Request{})
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			entries, readErr := os.ReadDir(h.opts.OutputDir)
			if readErr != nil {
				t.Fatal(readErr)
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					t.Fatalf("output dir should hold no files, found %s", entry.Name())
				}
			}
		})
	}
}

func TestRunBusyWorkDir(t *testing.T) {
	h := newHarness(t)
	lock := flock.New(filepath.Join(h.opts.WorkDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("acquire lock: %v", err)
	}
	defer func() { _ = lock.Unlock() }()

	if _, err := h.run(t, Request{}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestOutputName(t *testing.T) {
	if got := OutputName(testsupport.ScenarioWords()); got != "IS-GREAT-TODAY.mp4" {
		t.Fatalf("OutputName = %q", got)
	}
	if got := OutputName([]subtitle.Word{{Text: "ça"}, {Text: "va?"}}); got != "ÇA-VA.mp4" {
		t.Fatalf("OutputName = %q", got)
	}
	if got := OutputName(nil); got != DefaultOutputName {
		t.Fatalf("OutputName(nil) = %q", got)
	}
}

func TestBuildPlanProgressive(t *testing.T) {
	tl, err := timeline.Assemble(10, 3, 2)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	plan, err := BuildPlan(nil, testsupport.ScenarioWords(), tl, subtitle.ModeProgressive, 2)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(plan.MainLines) != 0 || len(plan.FrozenLines) != 2 {
		t.Fatalf("unexpected lines %+v", plan)
	}
	// 2 backgrounds + 3 highlights
	if len(plan.Directives) != 5 {
		t.Fatalf("expected 5 directives, got %d", len(plan.Directives))
	}
	last := plan.FrozenLines[1]
	if last.Start() != 8.8 || last.End() != 9.5 {
		t.Fatalf("shifted line = [%v, %v], want [8.8, 9.5]", last.Start(), last.End())
	}
	if got := len(plan.AllLines()); got != 2 {
		t.Fatalf("AllLines = %d", got)
	}
}
