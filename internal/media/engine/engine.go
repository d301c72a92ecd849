package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"holdcut/internal/logging"
	"holdcut/internal/subtitle"
)

const (
	defaultWidth  = 1080
	defaultHeight = 1920

	overlayFileName = "overlay.ass"
)

var (
	// ErrEncode marks failures while rendering the composite.
	ErrEncode = errors.New("encode failed")
	// ErrSplice marks an unusable splice request.
	ErrSplice = errors.New("invalid splice request")
)

// EncodeError carries the destination and ffmpeg output of a failed encode.
type EncodeError struct {
	Dest   string
	Output string
	Err    error
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("ffmpeg encode %s: %v", e.Dest, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrEncode.
func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Options configures an Engine.
type Options struct {
	FFmpegBinary string
	VideoCodec   string
	AudioCodec   string
	Preset       string
	Threads      int
	Style        Style
}

// Engine renders composites with ffmpeg.
type Engine struct {
	opts   Options
	run    Runner
	logger *slog.Logger
}

// New constructs an Engine.
func New(opts Options, logger *slog.Logger) *Engine {
	if strings.TrimSpace(opts.FFmpegBinary) == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if opts.VideoCodec == "" {
		opts.VideoCodec = "libx264"
	}
	if opts.AudioCodec == "" {
		opts.AudioCodec = "aac"
	}
	if opts.Style == (Style{}) {
		opts.Style = DefaultStyle()
	}
	return &Engine{
		opts:   opts,
		run:    combinedOutput,
		logger: logging.NewComponentLogger(logger, "engine"),
	}
}

// WithRunner overrides command execution, primarily for tests.
func (e *Engine) WithRunner(run Runner) *Engine {
	if run != nil {
		e.run = run
	}
	return e
}

// SpliceRequest describes the trim-and-hold composite.
type SpliceRequest struct {
	Source         string
	SourceHasAudio bool
	HoldAudio      string
	FreezePoint    float64
	FreezeDuration float64
	Width          int
	Height         int
	WorkDir        string
}

// Clip is a lazily rendered composite. The zero value is not usable; build
// clips with Splice.
type Clip struct {
	Source         string
	SourceHasAudio bool
	HoldAudio      string
	FreezePoint    float64
	FreezeDuration float64
	Width          int
	Height         int
	WorkDir        string
	Subtitles      string
}

// Duration is the total composite length in seconds.
func (c Clip) Duration() float64 {
	return c.FreezePoint + c.FreezeDuration
}

// Splice describes a composite of source[0, FreezePoint) followed by its last
// frame held for FreezeDuration, with HoldAudio playing over the hold.
func (e *Engine) Splice(ctx context.Context, req SpliceRequest) (Clip, error) {
	if err := ctx.Err(); err != nil {
		return Clip{}, err
	}
	if strings.TrimSpace(req.Source) == "" {
		return Clip{}, fmt.Errorf("%w: source video is required", ErrSplice)
	}
	if strings.TrimSpace(req.HoldAudio) == "" {
		return Clip{}, fmt.Errorf("%w: hold audio is required", ErrSplice)
	}
	if !positive(req.FreezePoint) || !positive(req.FreezeDuration) {
		return Clip{}, fmt.Errorf("%w: freeze point %v and duration %v must be positive", ErrSplice, req.FreezePoint, req.FreezeDuration)
	}
	if strings.TrimSpace(req.WorkDir) == "" {
		return Clip{}, fmt.Errorf("%w: work directory is required", ErrSplice)
	}
	for _, path := range []string{req.Source, req.HoldAudio} {
		if _, err := os.Stat(path); err != nil {
			return Clip{}, fmt.Errorf("%w: %w", ErrSplice, err)
		}
	}
	width, height := req.Width, req.Height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	clip := Clip{
		Source:         req.Source,
		SourceHasAudio: req.SourceHasAudio,
		HoldAudio:      req.HoldAudio,
		FreezePoint:    req.FreezePoint,
		FreezeDuration: req.FreezeDuration,
		Width:          width,
		Height:         height,
		WorkDir:        req.WorkDir,
	}
	e.logger.Debug("splice prepared",
		logging.String(logging.FieldSource, req.Source),
		logging.Float64("freeze_point", req.FreezePoint),
		logging.Float64("freeze_duration", req.FreezeDuration),
	)
	return clip, nil
}

// Overlay attaches timed text layers to the clip by writing an ASS script into
// the clip's work directory. An empty directive list returns the clip as is.
func (e *Engine) Overlay(ctx context.Context, clip Clip, directives []subtitle.Directive) (Clip, error) {
	if err := ctx.Err(); err != nil {
		return Clip{}, err
	}
	if len(directives) == 0 {
		return clip, nil
	}
	if clip.WorkDir == "" {
		return Clip{}, fmt.Errorf("%w: clip has no work directory", ErrSplice)
	}
	path := filepath.Join(clip.WorkDir, overlayFileName)
	file, err := os.Create(path)
	if err != nil {
		return Clip{}, fmt.Errorf("create overlay script: %w", err)
	}
	if err := WriteASS(file, directives, e.opts.Style, clip.Width, clip.Height); err != nil {
		_ = file.Close()
		return Clip{}, fmt.Errorf("write overlay script: %w", err)
	}
	if err := file.Close(); err != nil {
		return Clip{}, fmt.Errorf("close overlay script: %w", err)
	}
	e.logger.Debug("overlay script written",
		logging.String("path", path),
		logging.Int("directives", len(directives)),
	)
	clip.Subtitles = path
	return clip, nil
}

// Encode renders clip to dest. A failed encode removes any partial file.
func (e *Engine) Encode(ctx context.Context, clip Clip, dest string) error {
	if strings.TrimSpace(dest) == "" {
		return &EncodeError{Dest: dest, Err: errors.New("destination path is required")}
	}
	if clip.Source == "" || !positive(clip.FreezePoint) || !positive(clip.FreezeDuration) {
		return &EncodeError{Dest: dest, Err: ErrSplice}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &EncodeError{Dest: dest, Err: err}
	}
	args := e.encodeArgs(clip, dest)
	e.logger.Info("encoding composite",
		logging.String(logging.FieldOutput, dest),
		logging.Float64("duration_seconds", clip.Duration()),
		logging.String("video_codec", e.opts.VideoCodec),
	)
	output, err := e.run(ctx, e.opts.FFmpegBinary, args...)
	if err != nil {
		_ = os.Remove(dest)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &EncodeError{Dest: dest, Output: strings.TrimSpace(string(output)), Err: err}
	}
	return nil
}

// ExtractAudio writes mono 16 kHz PCM audio for source[start, start+duration)
// to dest. A non-positive duration extracts to the end of the input.
func (e *Engine) ExtractAudio(ctx context.Context, source string, start, duration float64, dest string) error {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if start > 0 {
		args = append(args, "-ss", formatSeconds(start))
	}
	if duration > 0 {
		args = append(args, "-t", formatSeconds(duration))
	}
	args = append(args, "-i", source, "-vn", "-ac", "1", "-ar", "16000", "-c:a", "pcm_s16le", dest)
	output, err := e.run(ctx, e.opts.FFmpegBinary, args...)
	if err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (e *Engine) encodeArgs(clip Clip, dest string) []string {
	fp := formatSeconds(clip.FreezePoint)
	hold := formatSeconds(clip.FreezeDuration)

	video := fmt.Sprintf("[0:v]trim=end=%s,setpts=PTS-STARTPTS,tpad=stop_mode=clone:stop_duration=%s", fp, hold)
	if clip.Subtitles != "" {
		video += ",ass=" + escapeFilterPath(clip.Subtitles)
	}
	video += "[v]"

	var audio string
	if clip.SourceHasAudio {
		audio = fmt.Sprintf("[0:a]atrim=end=%s,asetpts=PTS-STARTPTS[a0];[1:a]atrim=end=%s,asetpts=PTS-STARTPTS[a1];[a0][a1]concat=n=2:v=0:a=1[a]", fp, hold)
	} else {
		delay := strconv.FormatInt(int64(math.Round(clip.FreezePoint*1000)), 10)
		audio = fmt.Sprintf("[1:a]atrim=end=%s,asetpts=PTS-STARTPTS,adelay=delays=%s:all=1[a]", hold, delay)
	}

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", clip.Source,
		"-i", clip.HoldAudio,
		"-filter_complex", video + ";" + audio,
		"-map", "[v]", "-map", "[a]",
		"-c:v", e.opts.VideoCodec,
	}
	if e.opts.Preset != "" {
		args = append(args, "-preset", e.opts.Preset)
	}
	args = append(args, "-c:a", e.opts.AudioCodec)
	if e.opts.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(e.opts.Threads))
	}
	args = append(args, "-t", formatSeconds(clip.Duration()), "-movflags", "+faststart", dest)
	return args
}

func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\\\`,
		`'`, `\\\'`,
		`:`, `\\:`,
		`,`, `\,`,
		`;`, `\;`,
		`[`, `\[`,
		`]`, `\]`,
	)
	return replacer.Replace(path)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec
}
