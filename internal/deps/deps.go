package deps

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Requirement defines an external tool the vodsnip pipeline shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArgs, when set, are passed to the binary to read its version
	// banner (-version for the ffmpeg family, --version for most others).
	VersionArgs []string
}

// Status reports the availability of one tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Version holds the first line of the tool's version banner when the
	// probe succeeded, e.g. "ffmpeg version 6.1.1".
	Version string
	// Detail explains an unavailable tool or a failed version probe.
	Detail string
}

const versionProbeTimeout = 5 * time.Second

// Check resolves each requirement on PATH and, where the tool advertises a
// version flag, probes it so `vodsnip deps` can show what will actually run.
// A tool that resolves but fails its version probe still counts as
// available; OCR language packs and codec builds vary too much to be strict
// about banners.
func Check(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		command := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     command,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", command)
			results = append(results, status)
			continue
		}
		status.Available = true
		if len(req.VersionArgs) > 0 {
			version, err := probeVersion(ctx, resolved, req.VersionArgs)
			if err != nil {
				status.Detail = fmt.Sprintf("version probe failed: %v", err)
			} else {
				status.Version = version
			}
		}
		results = append(results, status)
	}
	return results
}

// probeVersion runs the binary with its version flag and returns the first
// output line. Tools disagree on whether the banner goes to stdout or
// stderr, so both are read.
func probeVersion(ctx context.Context, binary string, args []string) (string, error) {
	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, binary, args...) //nolint:gosec
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(output.String(), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no version output")
	}
	return line, nil
}
