package whisperx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"holdcut/internal/logging"
	"holdcut/internal/subtitle"
)

// ErrTranscription marks any failure to turn audio into words.
var ErrTranscription = errors.New("transcription failed")

// TranscriptionError records which audio file failed to transcribe.
type TranscriptionError struct {
	Audio string
	Err   error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcribe %s: %v", filepath.Base(e.Audio), e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTranscription.
func (e *TranscriptionError) Is(target error) bool { return target == ErrTranscription }

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	commandRunner CommandRunner
	logger        *slog.Logger
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.UVXBinary == "" {
		cfg.UVXBinary = UVXCommand
	}
	return &Service{cfg: cfg, logger: logging.NewComponentLogger(logger, "whisperx")}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) *Service {
	s.commandRunner = runner
	return s
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Transcribe runs WhisperX on audioPath, writing its output under workDir, and
// returns the recognised words ordered by start time.
func (s *Service) Transcribe(ctx context.Context, audioPath, workDir string) ([]subtitle.Word, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, &TranscriptionError{Audio: audioPath, Err: errors.New("audio path required")}
	}
	if workDir == "" {
		workDir = filepath.Dir(audioPath)
	}
	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	outputDir := filepath.Join(workDir, "whisperx-"+baseName)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &TranscriptionError{Audio: audioPath, Err: fmt.Errorf("ensure output dir: %w", err)}
	}

	s.logger.InfoContext(ctx, "transcribing audio",
		logging.String("audio", audioPath),
		logging.String("model", s.Model()),
		logging.Bool("cuda", s.cfg.CUDAEnabled),
	)
	if err := s.run(ctx, s.cfg.UVXBinary, s.buildArgs(audioPath, outputDir)...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TranscriptionError{Audio: audioPath, Err: err}
	}

	words, err := LoadWords(filepath.Join(outputDir, baseName+".json"))
	if err != nil {
		return nil, &TranscriptionError{Audio: audioPath, Err: err}
	}
	s.logger.DebugContext(ctx, "transcription loaded", logging.Int("words", len(words)))
	return words, nil
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 32)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--beam_size", BeamSize,
		"--temperature", Temperature,
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if lang := strings.TrimSpace(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}
	return args
}

// Word represents a single word with timing from WhisperX output. Start and
// End are absent for tokens the aligner could not place.
type Word struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

type payload struct {
	Segments []Segment `json:"segments"`
}

// LoadSegments loads segments from a WhisperX JSON file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	return ParseSegments(data)
}

// ParseSegments decodes WhisperX JSON output.
func ParseSegments(data []byte) ([]Segment, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return p.Segments, nil
}

// LoadWords loads a WhisperX JSON file and returns its words in start order.
func LoadWords(jsonPath string) ([]subtitle.Word, error) {
	segments, err := LoadSegments(jsonPath)
	if err != nil {
		return nil, err
	}
	return Words(segments), nil
}

// Words flattens segments into timed words sorted by start time. Blank tokens
// are dropped; unaligned tokens start where the previous word ended (or at the
// segment start) and end at the next aligned word's start.
func Words(segments []Segment) []subtitle.Word {
	var out []subtitle.Word
	for _, seg := range segments {
		cursor := seg.Start
		for i, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			start := cursor
			if w.Start != nil {
				start = *w.Start
			}
			var end float64
			if w.End != nil {
				end = *w.End
			} else {
				end = nextAlignedStart(seg, i+1, start)
			}
			if end < start {
				end = start
			}
			out = append(out, subtitle.Word{Text: text, Start: start, End: end})
			cursor = end
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func nextAlignedStart(seg Segment, from int, fallback float64) float64 {
	for _, w := range seg.Words[from:] {
		if w.Start != nil {
			return *w.Start
		}
	}
	if seg.End > fallback {
		return seg.End
	}
	return fallback
}
