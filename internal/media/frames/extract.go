package frames

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
	"sync"

	"vodsnip/internal/config"
	"vodsnip/internal/logging"
	"vodsnip/internal/services"
)

// Extractor pulls cropped sample frames out of a VOD with ffmpeg, one
// low-rate pass per screen region.
type Extractor struct {
	ffmpegBinary string
	logger       *slog.Logger
}

// NewExtractor returns an Extractor using the given ffmpeg binary.
func NewExtractor(ffmpegBinary string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{
		ffmpegBinary: strings.TrimSpace(ffmpegBinary),
		logger:       logging.NewComponentLogger(logger, "frames"),
	}
}

// ExtractRegions decodes the VOD once per region, writing one cropped JPEG
// every intervalSeconds into identityDir and titleDir. Both regions run
// concurrently; a region whose directory already holds frames is skipped so
// interrupted runs can resume. The returned Index covers whichever frames
// both regions produced.
func (e *Extractor) ExtractRegions(ctx context.Context, videoPath, identityDir, titleDir string, rois config.ROIs, intervalSeconds int) (*Index, error) {
	if strings.TrimSpace(videoPath) == "" {
		return nil, services.Wrap(services.ErrValidation, "frames", "extract", "Empty video path", nil)
	}
	if intervalSeconds <= 0 {
		return nil, services.Wrap(services.ErrValidation, "frames", "extract", fmt.Sprintf("Invalid sampling interval %d", intervalSeconds), nil)
	}

	regions := []struct {
		name string
		dir  string
		roi  config.ROI
	}{
		{"identity", identityDir, rois.Identity},
		{"title", titleDir, rois.Title},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(regions))
	for i, region := range regions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = e.extractRegion(ctx, videoPath, region.dir, region.name, region.roi, intervalSeconds)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return NewIndex(identityDir, titleDir, intervalSeconds)
}

func (e *Extractor) extractRegion(ctx context.Context, videoPath, dir, name string, roi config.ROI, intervalSeconds int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("frames: create %s: %w", dir, err)
	}
	existing, err := countFrames(dir)
	if err != nil {
		return err
	}
	if existing > 0 {
		e.logger.Info("region already extracted, skipping",
			logging.String("region", name),
			logging.Int("frames", existing))
		return nil
	}

	e.logger.Info("extracting region frames",
		logging.String("region", name),
		logging.Int("interval_seconds", intervalSeconds))

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-vf", CropFilter(roi, intervalSeconds),
		"-qscale:v", "2",
		filepath.Join(dir, "frame_%04d.jpg"),
	}
	cmd := exec.CommandContext(ctx, e.ffmpegBinary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		return services.Wrap(services.ErrExternalTool, "frames", "extract "+name,
			fmt.Sprintf("ffmpeg frame extraction failed: %s", detail), err)
	}
	return nil
}

// CropFilter builds the ffmpeg video filter that samples one frame every
// intervalSeconds and crops it to the given fractional region. Fractions are
// expressed relative to in_w/in_h so the same filter works at any VOD
// resolution.
func CropFilter(roi config.ROI, intervalSeconds int) string {
	return fmt.Sprintf("fps=1/%d,crop=in_w*%s:in_h*%s:in_w*%s:in_h*%s",
		intervalSeconds,
		formatFrac(roi.WFrac), formatFrac(roi.HFrac),
		formatFrac(roi.XFrac), formatFrac(roi.YFrac))
}

func formatFrac(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
