package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"holdcut/internal/render"
	"holdcut/internal/services/whisperx"
	"holdcut/internal/subtitle"
	"holdcut/internal/timeline"
)

type planReport struct {
	Timeline timeline.Timeline   `json:"timeline" yaml:"timeline"`
	Mode     string              `json:"mode" yaml:"mode"`
	Plan     render.SubtitlePlan `json:"plan" yaml:"plan"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var (
		mainPath      string
		frozenPath    string
		videoDuration float64
		holdDuration  float64
		mode          string
		maxWords      int
		format        string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the subtitle overlay plan for existing WhisperX transcripts",
		Long: `Plan groups words from WhisperX JSON transcripts into subtitle lines, moves
the new-audio lines onto the composite timeline, and prints the resulting
overlay directives without touching any media.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outFormat, err := normalizeFormat(format, formatTable, formatJSON, formatYAML, formatSRT)
			if err != nil {
				return err
			}
			if mainPath == "" && frozenPath == "" {
				return errors.New("at least one of --main or --frozen is required")
			}

			modeValue := cfg.Subtitles.Mode
			if cmd.Flags().Changed("mode") {
				modeValue = mode
			}
			renderMode, err := subtitle.ParseMode(modeValue)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-words") {
				maxWords = cfg.Subtitles.MaxWords
			} else if maxWords < 1 {
				return errors.New("--max-words must be at least 1")
			}

			mainWords, err := loadTranscript(mainPath)
			if err != nil {
				return err
			}
			frozenWords, err := loadTranscript(frozenPath)
			if err != nil {
				return err
			}
			if holdDuration == 0 {
				holdDuration = lastWordEnd(frozenWords)
			}

			tl, err := timeline.Assemble(videoDuration, holdDuration, cfg.Timeline.HoldTriggerOffset)
			if err != nil {
				return err
			}
			plan, err := render.BuildPlan(mainWords, frozenWords, tl, renderMode, maxWords)
			if err != nil {
				return err
			}

			switch outFormat {
			case formatJSON:
				return writeJSON(cmd, planReport{Timeline: tl, Mode: renderMode.String(), Plan: plan})
			case formatYAML:
				return writeYAML(cmd, planReport{Timeline: tl, Mode: renderMode.String(), Plan: plan})
			case formatSRT:
				return subtitle.WriteSRT(cmd.OutOrStdout(), plan.AllLines())
			}

			rows := make([][]string, 0, len(plan.Directives))
			for i, d := range plan.Directives {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(d.Layer),
					d.Role.String(),
					seconds(d.Start),
					seconds(d.End()),
					tl.SegmentAt(d.Start).String(),
					d.Content,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Freeze at %ss for %ss (%s mode, %d words per line)\n",
				seconds(tl.FreezePoint), seconds(tl.FreezeDuration), renderMode, maxWords)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Layer", "Role", "Start", "End", "Segment", "Content"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&mainPath, "main", "", "WhisperX JSON transcript of the original audio")
	cmd.Flags().StringVar(&frozenPath, "frozen", "", "WhisperX JSON transcript of the hold audio")
	cmd.Flags().Float64Var(&videoDuration, "video-duration", 0, "Duration of the source video in seconds")
	cmd.Flags().Float64Var(&holdDuration, "hold-duration", 0, "Duration of the hold audio in seconds (defaults to the last frozen word end)")
	cmd.Flags().StringVar(&mode, "mode", "", "Subtitle mode: sequential or progressive")
	cmd.Flags().IntVar(&maxWords, "max-words", 0, "Maximum words per subtitle line")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json, yaml, or srt")
	_ = cmd.MarkFlagRequired("video-duration")
	return cmd
}

func loadTranscript(path string) ([]subtitle.Word, error) {
	if path == "" {
		return nil, nil
	}
	words, err := whisperx.LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("load transcript %s: %w", path, err)
	}
	return words, nil
}

func lastWordEnd(words []subtitle.Word) float64 {
	var end float64
	for _, w := range words {
		end = max(end, w.End)
	}
	return end
}
