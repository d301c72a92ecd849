package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"holdcut/internal/audiosource"
	"holdcut/internal/config"
	"holdcut/internal/deps"
	"holdcut/internal/logging"
	"holdcut/internal/media/engine"
	"holdcut/internal/media/ffprobe"
	"holdcut/internal/notifications"
	"holdcut/internal/preflight"
	"holdcut/internal/render"
	"holdcut/internal/services/whisperx"
	"holdcut/internal/subtitle"
)

type renderFlags struct {
	video         string
	audioURL      string
	output        string
	mode          string
	maxWords      int
	keepWork      bool
	writeSRT      bool
	skipPreflight bool
	jsonOutput    bool
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [video] [audio-url]",
		Short: "Render a freeze-frame video with burned-in subtitles",
		Long: `Render trims the video [timeline] hold_trigger_offset seconds before its
end, holds that frame for as long as the downloaded audio plays, transcribes
both the original speech and the new audio, and burns the subtitles into the
result.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && flags.video == "" {
				flags.video = args[0]
			}
			if len(args) > 1 && flags.audioURL == "" {
				flags.audioURL = args[1]
			}
			if strings.TrimSpace(flags.video) == "" || strings.TrimSpace(flags.audioURL) == "" {
				return errors.New("both a video file (--video) and an audio URL (--audio-url) are required")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts, err := renderOptions(cfg, flags, cmd)
			if err != nil {
				return err
			}

			if !flags.skipPreflight {
				if err := runRenderPreflight(cmd, cfg, flags.video); err != nil {
					return err
				}
			}

			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			notifier := notifications.NewService(cfg)
			orchestrator := newOrchestrator(cfg, opts, logger)
			result, err := orchestrator.Run(cmd.Context(), render.Request{
				VideoPath: flags.video,
				AudioURL:  flags.audioURL,
				Output:    flags.output,
			})
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					notify(logger, notifier.NotifyError(context.WithoutCancel(cmd.Context()), err, filepath.Base(flags.video)))
				}
				return err
			}
			notify(logger, notifier.NotifyRenderCompleted(cmd.Context(), result.Output, result.Elapsed))

			if flags.jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %s\n", result.Output)
			if result.SRTPath != "" {
				fmt.Fprintf(out, "Subtitles %s\n", result.SRTPath)
			}
			if result.WorkDir != "" {
				fmt.Fprintf(out, "Work files kept in %s\n", result.WorkDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.video, "video", "v", "", "Source video file")
	cmd.Flags().StringVarP(&flags.audioURL, "audio-url", "u", "", "URL of the audio to play over the frozen frame")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (defaults to the first three words of the new audio)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "Subtitle mode: sequential or progressive")
	cmd.Flags().IntVar(&flags.maxWords, "max-words", 0, "Maximum words per subtitle line")
	cmd.Flags().BoolVar(&flags.keepWork, "keep-work", false, "Keep intermediate files")
	cmd.Flags().BoolVar(&flags.writeSRT, "srt", false, "Also write an .srt file next to the output")
	cmd.Flags().BoolVar(&flags.skipPreflight, "skip-preflight", false, "Skip dependency and directory checks")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the run result as JSON")
	return cmd
}

func renderOptions(cfg *config.Config, flags renderFlags, cmd *cobra.Command) (render.Options, error) {
	modeValue := cfg.Subtitles.Mode
	if cmd.Flags().Changed("mode") {
		modeValue = flags.mode
	}
	mode, err := subtitle.ParseMode(modeValue)
	if err != nil {
		return render.Options{}, err
	}
	maxWords := cfg.Subtitles.MaxWords
	if cmd.Flags().Changed("max-words") {
		if flags.maxWords < 1 {
			return render.Options{}, errors.New("--max-words must be at least 1")
		}
		maxWords = flags.maxWords
	}
	return render.Options{
		WorkDir:           cfg.Paths.WorkDir,
		OutputDir:         cfg.Paths.OutputDir,
		HoldTriggerOffset: cfg.Timeline.HoldTriggerOffset,
		Mode:              mode,
		MaxWords:          maxWords,
		WriteSRT:          flags.writeSRT || cfg.Subtitles.WriteSRT,
		KeepWork:          flags.keepWork,
	}, nil
}

func runRenderPreflight(cmd *cobra.Command, cfg *config.Config, video string) error {
	results := append(preflight.RunAll(cmd.Context(), cfg), preflight.CheckInputFile("Video", video))
	var problems []string
	for _, r := range preflight.Failed(results) {
		problems = append(problems, fmt.Sprintf("%s: %s", r.Name, r.Detail))
	}
	if err := deps.RequireAll(preflight.CheckSystemDeps(cfg)); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("preflight failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func newOrchestrator(cfg *config.Config, opts render.Options, logger *slog.Logger) *render.Orchestrator {
	prober := ffprobe.New(cfg.FFprobeBinary())
	source := audiosource.New(audiosource.Options{
		Binary:        cfg.YtDlpBinary(),
		Format:        cfg.AudioSource.Format,
		Codec:         cfg.AudioSource.Codec,
		Quality:       cfg.AudioSource.Quality,
		SocketTimeout: cfg.AudioSource.SocketTimeout,
		Retries:       cfg.AudioSource.Retries,
	}, prober, logger)
	transcriber := whisperx.NewService(whisperx.Config{
		Model:       cfg.Transcription.Model,
		Language:    cfg.Transcription.Language,
		CUDAEnabled: cfg.Transcription.CUDAEnabled,
		VADMethod:   cfg.Transcription.VADMethod,
		HFToken:     cfg.Transcription.HFToken,
		UVXBinary:   cfg.UVXBinary(),
	}, logger)
	media := engine.New(engine.Options{
		FFmpegBinary: cfg.FFmpegBinary(),
		VideoCodec:   cfg.Encode.VideoCodec,
		AudioCodec:   cfg.Encode.AudioCodec,
		Preset:       cfg.Encode.Preset,
		Threads:      cfg.Encode.Threads,
		Style: engine.Style{
			Font:           cfg.Subtitles.Font,
			FontSize:       cfg.Subtitles.FontSize,
			WordColor:      cfg.Subtitles.WordColor,
			HighlightColor: cfg.Subtitles.HighlightColor,
			OutlineColor:   cfg.Subtitles.OutlineColor,
			OutlineWidth:   cfg.Subtitles.OutlineWidth,
		},
	}, logger)
	logger.Debug("collaborators ready",
		logging.String("ffmpeg", cfg.FFmpegBinary()),
		logging.String("whisperx_model", transcriber.Model()),
	)
	return render.NewOrchestrator(opts, prober, source, transcriber, media, logger)
}

func notify(logger *slog.Logger, err error) {
	if err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}
}
