// Package deps reports whether the external tools holdcut shells out to are
// installed.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"holdcut/internal/config"
)

// Requirement defines an external dependency holdcut relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the binaries a render needs, resolved from cfg.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "Splices, overlays, and encodes the composite"},
		{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "Measures video and audio durations"},
		{Name: "yt-dlp", Command: cfg.YtDlpBinary(), Description: "Downloads the hold audio"},
		{Name: "uvx", Command: cfg.UVXBinary(), Description: "Launches WhisperX for transcription"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch {
		case cmd == "":
			status.Detail = "command not configured"
		default:
			if _, err := exec.LookPath(cmd); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", cmd)
			} else {
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// RequireAll returns an error naming every missing non-optional dependency.
func RequireAll(statuses []Status) error {
	var errs []error
	for _, status := range statuses {
		if status.Available || status.Optional {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %s", status.Name, status.Detail))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("missing dependencies: %w", errors.Join(errs...))
}
