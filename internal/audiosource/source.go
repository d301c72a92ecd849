// Package audiosource downloads the hold audio from a URL with yt-dlp and
// reports its duration.
package audiosource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"holdcut/internal/logging"
)

// ErrDownload marks any failure to produce a usable audio file from a URL.
var ErrDownload = errors.New("audio download failed")

// DownloadError describes a failed fetch.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDownload.
func (e *DownloadError) Is(target error) bool { return target == ErrDownload }

// CommandRunner executes an external command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// DurationProber reports a media file's duration in seconds.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Options configures the yt-dlp invocation.
type Options struct {
	Binary        string
	FFmpegBinary  string
	Format        string
	Codec         string
	Quality       string
	SocketTimeout int
	Retries       int
}

// Audio is a downloaded, decodable audio file.
type Audio struct {
	Path     string
	Duration float64
}

// Source fetches audio with yt-dlp.
type Source struct {
	opts   Options
	prober DurationProber
	run    CommandRunner
	logger *slog.Logger
}

// New constructs a Source.
func New(opts Options, prober DurationProber, logger *slog.Logger) *Source {
	if opts.Binary == "" {
		opts.Binary = "yt-dlp"
	}
	if opts.Format == "" {
		opts.Format = "bestaudio/best"
	}
	if opts.Codec == "" {
		opts.Codec = "mp3"
	}
	if opts.Quality == "" {
		opts.Quality = "192"
	}
	return &Source{
		opts:   opts,
		prober: prober,
		run:    combinedOutput,
		logger: logging.NewComponentLogger(logger, "audiosource"),
	}
}

// WithCommandRunner overrides command execution, primarily for tests.
func (s *Source) WithCommandRunner(run CommandRunner) *Source {
	if run != nil {
		s.run = run
	}
	return s
}

// Fetch downloads rawURL into destDir as an audio file and measures it.
func (s *Source) Fetch(ctx context.Context, rawURL, destDir string) (Audio, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := validateURL(rawURL); err != nil {
		return Audio{}, &DownloadError{URL: rawURL, Err: err}
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Audio{}, &DownloadError{URL: rawURL, Err: fmt.Errorf("ensure destination: %w", err)}
	}

	dest := filepath.Join(destDir, "hold_audio."+s.opts.Codec)
	_ = os.Remove(dest)

	s.logger.InfoContext(ctx, "downloading audio", logging.String("url", rawURL))
	output, err := s.run(ctx, s.opts.Binary, s.buildArgs(rawURL, destDir)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Audio{}, ctxErr
		}
		return Audio{}, &DownloadError{URL: rawURL, Err: fmt.Errorf("%s: %w: %s", s.opts.Binary, err, lastLine(output))}
	}
	if info, err := os.Stat(dest); err != nil || info.Size() == 0 {
		return Audio{}, &DownloadError{URL: rawURL, Err: fmt.Errorf("no audio written to %s", dest)}
	}

	duration, err := s.prober.Duration(ctx, dest)
	if err != nil {
		return Audio{}, &DownloadError{URL: rawURL, Err: fmt.Errorf("probe audio: %w", err)}
	}
	s.logger.InfoContext(ctx, "audio ready",
		logging.String("path", dest),
		logging.Float64("duration_seconds", duration),
	)
	return Audio{Path: dest, Duration: duration}, nil
}

func (s *Source) buildArgs(rawURL, destDir string) []string {
	args := []string{
		"--no-playlist",
		"--no-progress",
		"-f", s.opts.Format,
		"-x",
		"--audio-format", s.opts.Codec,
		"--audio-quality", s.opts.Quality,
		"-o", filepath.Join(destDir, "hold_audio.%(ext)s"),
	}
	if s.opts.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(s.opts.SocketTimeout))
	}
	if s.opts.Retries > 0 {
		args = append(args, "--retries", strconv.Itoa(s.opts.Retries))
	}
	if s.opts.FFmpegBinary != "" {
		args = append(args, "--ffmpeg-location", s.opts.FFmpegBinary)
	}
	return append(args, rawURL)
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return errors.New("url is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("url has no host")
	}
	return nil
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec
}
