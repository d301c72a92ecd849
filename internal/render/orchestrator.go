package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"holdcut/internal/audiosource"
	"holdcut/internal/fileutil"
	"holdcut/internal/logging"
	"holdcut/internal/media/engine"
	"holdcut/internal/media/ffprobe"
	"holdcut/internal/subtitle"
	"holdcut/internal/timeline"
)

var (
	// ErrInvalidRequest marks a request missing its video or audio URL.
	ErrInvalidRequest = errors.New("invalid render request")
	// ErrBusy is returned when another run holds the work directory lock.
	ErrBusy = errors.New("work directory is in use by another run")
)

const lockFileName = ".holdcut.lock"

// AudioSource downloads the hold audio.
type AudioSource interface {
	Fetch(ctx context.Context, url, destDir string) (audiosource.Audio, error)
}

// Transcriber turns an audio file into ordered words.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, workDir string) ([]subtitle.Word, error)
}

// MediaEngine splices, overlays, and encodes the composite.
type MediaEngine interface {
	Splice(ctx context.Context, req engine.SpliceRequest) (engine.Clip, error)
	Overlay(ctx context.Context, clip engine.Clip, directives []subtitle.Directive) (engine.Clip, error)
	Encode(ctx context.Context, clip engine.Clip, dest string) error
	ExtractAudio(ctx context.Context, source string, start, duration float64, dest string) error
}

// Prober inspects the source video.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// Options holds per-run settings resolved from configuration and flags.
type Options struct {
	WorkDir           string
	OutputDir         string
	HoldTriggerOffset float64
	Mode              subtitle.Mode
	MaxWords          int
	WriteSRT          bool
	KeepWork          bool
}

// Request identifies the inputs of one run. Output, when set, overrides the
// derived file name.
type Request struct {
	VideoPath string
	AudioURL  string
	Output    string
}

// Result summarises a completed run.
type Result struct {
	RunID      string            `json:"run_id"`
	Output     string            `json:"output"`
	SRTPath    string            `json:"srt_path,omitempty"`
	WorkDir    string            `json:"work_dir,omitempty"`
	Timeline   timeline.Timeline `json:"timeline"`
	Lines      int               `json:"lines"`
	Directives int               `json:"directives"`
	Elapsed    time.Duration     `json:"elapsed"`
}

// Orchestrator runs the render pipeline.
type Orchestrator struct {
	opts        Options
	prober      Prober
	source      AudioSource
	transcriber Transcriber
	media       MediaEngine
	logger      *slog.Logger
	now         func() time.Time
}

// NewOrchestrator wires collaborators into an Orchestrator.
func NewOrchestrator(opts Options, prober Prober, source AudioSource, transcriber Transcriber, media MediaEngine, logger *slog.Logger) *Orchestrator {
	if opts.MaxWords < 1 {
		opts.MaxWords = subtitle.DefaultMaxWords
	}
	return &Orchestrator{
		opts:        opts,
		prober:      prober,
		source:      source,
		transcriber: transcriber,
		media:       media,
		logger:      logging.NewComponentLogger(logger, "render"),
		now:         time.Now,
	}
}

// Run executes one render. On failure nothing is written to the output path.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}
	started := o.now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	if err := os.MkdirAll(o.opts.WorkDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("ensure work dir: %w", err)
	}
	lock := flock.New(filepath.Join(o.opts.WorkDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("lock work dir: %w", err)
	}
	if !locked {
		return Result{}, ErrBusy
	}
	defer func() { _ = lock.Unlock() }()

	runDir := filepath.Join(o.opts.WorkDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create run dir: %w", err)
	}
	if !o.opts.KeepWork {
		defer func() {
			if err := os.RemoveAll(runDir); err != nil {
				o.logger.WarnContext(ctx, "work dir cleanup failed", logging.String("path", runDir), logging.Error(err))
			}
		}()
	}

	o.logger.InfoContext(ctx, "render started",
		logging.String(logging.FieldSource, req.VideoPath),
		logging.String("audio_url", req.AudioURL),
		logging.String("mode", o.opts.Mode.String()),
	)

	result, err := o.run(ctx, req, runDir)
	if err != nil {
		o.logger.ErrorContext(ctx, "render failed", logging.Error(err))
		return Result{}, err
	}
	result.RunID = runID
	if o.opts.KeepWork {
		result.WorkDir = runDir
	}
	result.Elapsed = o.now().Sub(started)
	logging.Progress(ctx, o.logger, 100, "done")
	o.logger.InfoContext(ctx, "render complete",
		logging.String(logging.FieldOutput, result.Output),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, req Request, runDir string) (Result, error) {
	logging.Progress(ctx, o.logger, 5, "probing source video")
	probe, err := o.prober.Inspect(ctx, req.VideoPath)
	if err != nil {
		return Result{}, fmt.Errorf("probe video: %w", err)
	}
	videoDuration := probe.DurationSeconds()
	if math.IsNaN(videoDuration) || videoDuration <= 0 {
		return Result{}, fmt.Errorf("probe video: %w", ffprobe.ErrNoDuration)
	}
	video, _ := probe.VideoStream()
	o.logger.DebugContext(ctx, "source probed",
		logging.Float64("duration_seconds", videoDuration),
		logging.Int("width", video.Width),
		logging.Int("height", video.Height),
		logging.Float64("fps", video.FrameRate()),
		logging.Bool("has_audio", probe.HasAudio()),
	)

	logging.Progress(ctx, o.logger, 15, "downloading hold audio")
	audio, err := o.source.Fetch(ctx, req.AudioURL, runDir)
	if err != nil {
		return Result{}, err
	}

	tl, err := timeline.Assemble(videoDuration, audio.Duration, o.opts.HoldTriggerOffset)
	if err != nil {
		return Result{}, err
	}
	o.logger.InfoContext(ctx, "timeline assembled",
		logging.Float64("freeze_point", tl.FreezePoint),
		logging.Float64("freeze_duration", tl.FreezeDuration),
		logging.Float64("total_seconds", tl.Total()),
	)

	logging.Progress(ctx, o.logger, 40, "transcribing audio")
	var (
		mainWords   []subtitle.Word
		frozenWords []subtitle.Word
		clip        engine.Clip
	)
	g, gctx := errgroup.WithContext(ctx)
	if probe.HasAudio() {
		g.Go(func() error {
			mainAudio := filepath.Join(runDir, "main.wav")
			if err := o.media.ExtractAudio(gctx, req.VideoPath, 0, tl.FreezePoint, mainAudio); err != nil {
				return err
			}
			words, err := o.transcriber.Transcribe(gctx, mainAudio, runDir)
			if err != nil {
				return err
			}
			mainWords = words
			return nil
		})
	} else {
		o.logger.InfoContext(ctx, "source video has no audio; main segment will have no subtitles")
	}
	g.Go(func() error {
		words, err := o.transcriber.Transcribe(gctx, audio.Path, runDir)
		if err != nil {
			return err
		}
		frozenWords = words
		return nil
	})
	g.Go(func() error {
		c, err := o.media.Splice(gctx, engine.SpliceRequest{
			Source:         req.VideoPath,
			SourceHasAudio: probe.HasAudio(),
			HoldAudio:      audio.Path,
			FreezePoint:    tl.FreezePoint,
			FreezeDuration: tl.FreezeDuration,
			Width:          video.Width,
			Height:         video.Height,
			WorkDir:        runDir,
		})
		if err != nil {
			return err
		}
		clip = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	logging.Progress(ctx, o.logger, 60, "planning subtitles")
	plan, err := BuildPlan(mainWords, frozenWords, tl, o.opts.Mode, o.opts.MaxWords)
	if err != nil {
		return Result{}, err
	}
	clip, err = o.media.Overlay(ctx, clip, plan.Directives)
	if err != nil {
		return Result{}, err
	}

	dest := o.destination(req, frozenWords)
	logging.Progress(ctx, o.logger, 80, "encoding video")
	staged := filepath.Join(runDir, "render"+filepath.Ext(dest))
	if err := o.media.Encode(ctx, clip, staged); err != nil {
		return Result{}, err
	}

	result := Result{
		Output:     dest,
		Timeline:   tl,
		Lines:      len(plan.MainLines) + len(plan.FrozenLines),
		Directives: len(plan.Directives),
	}
	if o.opts.WriteSRT {
		stagedSRT := filepath.Join(runDir, "render.srt")
		if err := writeSRTFile(stagedSRT, plan.AllLines()); err != nil {
			return Result{}, err
		}
		srtPath := strings.TrimSuffix(dest, filepath.Ext(dest)) + ".srt"
		if err := fileutil.Publish(stagedSRT, srtPath); err != nil {
			return Result{}, fmt.Errorf("publish subtitles: %w", err)
		}
		result.SRTPath = srtPath
	}
	// dest is published last; a failed run never leaves it behind.
	if err := fileutil.Publish(staged, dest); err != nil {
		if result.SRTPath != "" {
			_ = os.Remove(result.SRTPath)
		}
		return Result{}, fmt.Errorf("publish output: %w", err)
	}
	return result, nil
}

func (o *Orchestrator) destination(req Request, frozenWords []subtitle.Word) string {
	if out := strings.TrimSpace(req.Output); out != "" {
		if filepath.Ext(out) == "" {
			out += ".mp4"
		}
		return out
	}
	return filepath.Join(o.opts.OutputDir, OutputName(frozenWords))
}

func validateRequest(req Request) error {
	var missing []string
	if strings.TrimSpace(req.VideoPath) == "" {
		missing = append(missing, "video path")
	}
	if strings.TrimSpace(req.AudioURL) == "" {
		missing = append(missing, "audio url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, " and "))
	}
	return nil
}

func writeSRTFile(path string, lines []subtitle.Line) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create srt: %w", err)
	}
	if err := subtitle.WriteSRT(file, lines); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write srt: %w", err)
	}
	return file.Close()
}
