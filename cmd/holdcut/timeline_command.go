package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"holdcut/internal/media/ffprobe"
	"holdcut/internal/timeline"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var (
		videoPath     string
		audioPath     string
		videoDuration float64
		holdDuration  float64
		offset        float64
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Compute the freeze point and hold layout",
		Long: `Timeline computes where the freeze begins and how long it lasts. Durations
come from --video-duration/--hold-duration or are probed from --video/--audio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			prober := ffprobe.New(cfg.FFprobeBinary())
			if videoPath != "" {
				if videoDuration, err = prober.Duration(cmd.Context(), videoPath); err != nil {
					return err
				}
			}
			if audioPath != "" {
				if holdDuration, err = prober.Duration(cmd.Context(), audioPath); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("offset") {
				offset = cfg.Timeline.HoldTriggerOffset
			}

			tl, err := timeline.Assemble(videoDuration, holdDuration, offset)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, tl)
			}

			rows := [][]string{
				{timeline.SegmentMain.String(), seconds(tl.Main.Start), seconds(tl.Main.End), seconds(tl.Main.Duration())},
				{timeline.SegmentFrozen.String(), seconds(tl.Frozen.Start), seconds(tl.Frozen.End), seconds(tl.Frozen.Duration())},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Freeze point: %ss\nTotal length: %ss\n", seconds(tl.FreezePoint), seconds(tl.Total()))
			fmt.Fprintln(out, renderTable(
				[]string{"Segment", "Start", "End", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&videoPath, "video", "", "Probe the source video duration from this file")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Probe the hold audio duration from this file")
	cmd.Flags().Float64Var(&videoDuration, "video-duration", 0, "Source video duration in seconds")
	cmd.Flags().Float64Var(&holdDuration, "hold-duration", 0, "Hold audio duration in seconds")
	cmd.Flags().Float64Var(&offset, "offset", timeline.DefaultHoldTriggerOffset, "Seconds before the end of the video where the freeze starts")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the timeline as JSON")
	return cmd
}
