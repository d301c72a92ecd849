package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"holdcut/internal/notifications"
	"holdcut/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var audioURL string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools, directories, and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var report checkReport
			settings := report.section("Configuration")
			settings.add("Config file", statusInfo, ctx.configPath)
			settings.add("Hold offset", statusInfo, seconds(cfg.Timeline.HoldTriggerOffset)+"s")
			settings.add("Subtitle mode", statusInfo, fmt.Sprintf("%s, %d words per line", cfg.Subtitles.Mode, cfg.Subtitles.MaxWords))
			settings.add("WhisperX model", statusInfo, cfg.Transcription.Model)
			settings.add("CUDA", statusInfo, yesNo(cfg.Transcription.CUDAEnabled))
			settings.add("Notifications", statusInfo, yesNo(notifications.Enabled(notifications.NewService(cfg))))

			tools := report.section("Dependencies")
			for _, status := range preflight.CheckSystemDeps(cfg) {
				switch {
				case status.Available:
					tools.add(status.Name, statusOK, status.Command)
				case status.Optional:
					tools.add(status.Name, statusWarn, status.Detail)
				default:
					tools.add(status.Name, statusError, fmt.Sprintf("%s (%s)", status.Detail, status.Description))
				}
			}

			dirs := report.section("Directories")
			checks := preflight.RunAll(cmd.Context(), cfg)
			if audioURL != "" {
				checks = append(checks, preflight.CheckAudioURL(cmd.Context(), audioURL))
			}
			for _, result := range checks {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				dirs.add(result.Name, kind, result.Detail)
			}

			report.render(cmd.OutOrStdout(), shouldColorize(cmd.OutOrStdout()))
			if failures := report.count(statusError); failures > 0 {
				return fmt.Errorf("doctor found %d problem(s)", failures)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&audioURL, "audio-url", "", "Also check that this audio URL is reachable")
	return cmd
}
