package frames

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutOfRange is returned when a sample index falls outside the index.
var ErrOutOfRange = errors.New("sample index out of range")

// SampleCount returns the number of samples a VOD of the given duration
// yields at the given sampling interval. The sample at index i covers the
// instant i*interval seconds into the VOD.
func SampleCount(durationSeconds float64, intervalSeconds int) int {
	if durationSeconds <= 0 || intervalSeconds <= 0 {
		return 0
	}
	return int(math.Floor(durationSeconds/float64(intervalSeconds))) + 1
}

// Index maps sample indices to crop-frame image paths for both screen
// regions. Frames on disk are numbered from 1 (ffmpeg's image2 muxer
// convention); sample indices are zero-based.
type Index struct {
	identityDir     string
	titleDir        string
	count           int
	intervalSeconds int
}

// NewIndex builds an Index over previously extracted frame directories. The
// usable count is the smaller of the two directories' frame counts; both
// regions must have at least one frame.
func NewIndex(identityDir, titleDir string, intervalSeconds int) (*Index, error) {
	if intervalSeconds <= 0 {
		return nil, fmt.Errorf("frames: invalid interval %d", intervalSeconds)
	}
	identityCount, err := countFrames(identityDir)
	if err != nil {
		return nil, err
	}
	titleCount, err := countFrames(titleDir)
	if err != nil {
		return nil, err
	}
	count := min(identityCount, titleCount)
	if count == 0 {
		return nil, fmt.Errorf("frames: no frames extracted under %s", filepath.Dir(identityDir))
	}
	return &Index{
		identityDir:     identityDir,
		titleDir:        titleDir,
		count:           count,
		intervalSeconds: intervalSeconds,
	}, nil
}

// Count returns the number of samples in the index.
func (x *Index) Count() int {
	return x.count
}

// IntervalSeconds returns the sampling interval the frames were extracted at.
func (x *Index) IntervalSeconds() int {
	return x.intervalSeconds
}

// Time returns the VOD timestamp in seconds of the given sample.
func (x *Index) Time(index int) float64 {
	return float64(index * x.intervalSeconds)
}

// IdentityCrop returns the path of the identity-region crop for a sample.
func (x *Index) IdentityCrop(index int) (string, error) {
	return x.cropPath(x.identityDir, index)
}

// TitleCrop returns the path of the title-region crop for a sample.
func (x *Index) TitleCrop(index int) (string, error) {
	return x.cropPath(x.titleDir, index)
}

func (x *Index) cropPath(dir string, index int) (string, error) {
	if index < 0 || index >= x.count {
		return "", fmt.Errorf("%w: %d (count %d)", ErrOutOfRange, index, x.count)
	}
	return filepath.Join(dir, frameFile(index)), nil
}

func frameFile(index int) string {
	return fmt.Sprintf("frame_%04d.jpg", index+1)
}

func countFrames(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("frames: read %s: %w", dir, err)
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "frame_") && strings.HasSuffix(name, ".jpg") {
			count++
		}
	}
	return count, nil
}
