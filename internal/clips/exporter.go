package clips

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"vodsnip/internal/detect"
	"vodsnip/internal/identity"
	"vodsnip/internal/logging"
	"vodsnip/internal/services"
	"vodsnip/internal/textutil"
)

const maxClipNameRunes = 80

// Exporter cuts detected segments out of a VOD into standalone clip files.
type Exporter struct {
	ffmpegBinary string
	outputDir    string
	namePrefix   string
	logger       *slog.Logger
}

// NewExporter returns an Exporter writing clips into outputDir.
func NewExporter(ffmpegBinary, outputDir, namePrefix string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Exporter{
		ffmpegBinary: strings.TrimSpace(ffmpegBinary),
		outputDir:    outputDir,
		namePrefix:   strings.TrimSpace(namePrefix),
		logger:       logging.NewComponentLogger(logger, "clips"),
	}
}

// Export writes one clip per segment and returns the created paths. A
// failing segment is logged and skipped; the remaining segments still
// export.
func (e *Exporter) Export(ctx context.Context, vodPath string, segments []detect.Segment) ([]string, error) {
	if strings.TrimSpace(vodPath) == "" {
		return nil, services.Wrap(services.ErrValidation, "clips", "export", "Empty VOD path", nil)
	}
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("clips: create %s: %w", e.outputDir, err)
	}

	used := make(map[string]int)
	var paths []string
	for i, segment := range segments {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		outPath := filepath.Join(e.outputDir, e.clipName(segment, used))
		if err := e.cut(ctx, vodPath, outPath, segment); err != nil {
			e.logger.Warn("clip export failed",
				logging.Int("segment", i),
				logging.String("identity", segment.Identity),
				logging.Error(err),
				logging.String(logging.FieldImpact, "segment skipped, remaining clips still export"))
			continue
		}
		e.logger.Info("clip exported",
			logging.String("path", outPath),
			logging.Float64("start_sec", segment.StartSec),
			logging.Float64("duration_sec", segment.DurationSeconds()))
		paths = append(paths, outPath)
	}
	return paths, nil
}

// cut tries a copy-codec cut first; when the container refuses (keyframe
// placement, codec quirks) it falls back to a re-encode.
func (e *Exporter) cut(ctx context.Context, vodPath, outPath string, segment detect.Segment) error {
	copyArgs := e.cutArgs(vodPath, outPath, segment, []string{"-c", "copy"})
	if err := e.runFFmpeg(ctx, copyArgs); err == nil {
		return nil
	} else {
		e.logger.Debug("copy-codec cut failed, re-encoding",
			logging.String("path", outPath),
			logging.Error(err))
	}
	_ = os.Remove(outPath)

	encodeArgs := e.cutArgs(vodPath, outPath, segment, []string{
		"-c:v", "libx264", "-preset", "fast", "-crf", "20", "-c:a", "aac",
	})
	if err := e.runFFmpeg(ctx, encodeArgs); err != nil {
		return services.Wrap(services.ErrExternalTool, "clips", "cut", "ffmpeg clip extraction failed", err)
	}
	return nil
}

func (e *Exporter) cutArgs(vodPath, outPath string, segment detect.Segment, codec []string) []string {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-ss", formatSeconds(segment.StartSec),
		"-i", vodPath,
		"-t", formatSeconds(segment.DurationSeconds()),
	}
	args = append(args, codec...)
	args = append(args, outPath)
	return args
}

func (e *Exporter) runFFmpeg(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, e.ffmpegBinary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// clipName derives a filesystem-safe name from the segment title, falling
// back to the identity, with " Part N" uniquing for repeated names.
func (e *Exporter) clipName(segment detect.Segment, used map[string]int) string {
	base := strings.TrimSpace(segment.Title)
	if base == "" || base == identity.NoTitle {
		base = segment.Identity
	}
	if base == "" {
		base = "clip"
	}
	base = textutil.TruncateRunes(textutil.SanitizeFileName(base), maxClipNameRunes)
	if e.namePrefix != "" {
		base = e.namePrefix + " " + base
	}

	used[base]++
	if count := used[base]; count > 1 {
		base = base + " Part " + strconv.Itoa(count)
	}
	return base + ".mp4"
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
