package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"framelab/internal/config"
)

// Requirement defines an external binary the pipeline shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForExtraction lists the binaries frame and audio extraction need, as
// configured.
func ForExtraction(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Extract.FFmpegBinary,
			Description: "Decodes videos and writes frame and audio artifacts",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Extract.FFprobeBinary,
			Description: "Counts frames and inspects stream metadata",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Available commands are resolved to their absolute paths.
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
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		} else {
			status.Command = resolved
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}
