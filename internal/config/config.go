package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir  string `toml:"work_dir"`
	LogDir   string `toml:"log_dir"`
	ClipsDir string `toml:"clips_dir"`
}

// ROI describes a rectangular region of interest as fractions of the full
// frame size.
type ROI struct {
	XFrac float64 `toml:"x_frac"`
	YFrac float64 `toml:"y_frac"`
	WFrac float64 `toml:"w_frac"`
	HFrac float64 `toml:"h_frac"`
}

// ROIs contains the two screen regions sampled for text.
type ROIs struct {
	Identity ROI `toml:"identity"`
	Title    ROI `toml:"title"`
}

// Detection contains the segment detection tuning parameters.
type Detection struct {
	// IntervalSeconds is the spacing between sampled frames.
	IntervalSeconds int `toml:"interval_seconds"`
	// ScanStride is the coarse jump, in samples, used while no identity is
	// visible.
	ScanStride int `toml:"scan_stride"`
	// MaxGapSeconds bounds both the start-search lookback window and the
	// merge gap between neighboring segments.
	MaxGapSeconds int `toml:"max_gap_seconds"`
	// MinSegmentSeconds drops merged segments shorter than this.
	MinSegmentSeconds int `toml:"min_segment_seconds"`
	// SimilarityThreshold is the token-sort ratio above which two strings are
	// considered the same despite OCR noise. Calibrate together with the OCR
	// engine; values between 0.4 and 0.7 are typical.
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	// EndBufferSamples pads a segment end when the following sample carries
	// no identity (fade/transition).
	EndBufferSamples int `toml:"end_buffer_samples"`
	// CacheFlushEvery controls how many new OCR entries accumulate before the
	// cache file is flushed to disk.
	CacheFlushEvery int `toml:"cache_flush_every"`
}

// OCR contains configuration for the Tesseract text extractor.
type OCR struct {
	Languages   []string `toml:"languages"`
	Whitelist   string   `toml:"whitelist"`
	PageSegMode int      `toml:"page_seg_mode"`
}

// Vision contains connection settings for the multimodal title extractor.
type Vision struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Clips contains configuration for segment clip export.
type Clips struct {
	Enabled    bool   `toml:"enabled"`
	NamePrefix string `toml:"name_prefix"`
}

// Fetch contains configuration for VOD and chat acquisition.
type Fetch struct {
	TwitchDLBinary   string `toml:"twitch_dl_binary"`
	DownloaderBinary string `toml:"downloader_binary"`
	Quality          string `toml:"quality"`
	ChatWidth        int    `toml:"chat_width"`
	ChatHeight       int    `toml:"chat_height"`
	ChatFramerate    int    `toml:"chat_framerate"`
	ChatFontSize     int    `toml:"chat_font_size"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vodsnip.
//
// Configuration sections by subsystem:
//   - Paths: work/log/clip directories
//   - ROIs: fractional screen regions cropped for OCR
//   - Detection: sampling interval, stride, thresholds, gap limits
//   - OCR: Tesseract languages and character whitelist
//   - Vision: multimodal title extraction connection settings
//   - Clips: clip export naming
//   - Fetch: VOD/chat download and render tooling
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	ROIs      ROIs      `toml:"rois"`
	Detection Detection `toml:"detection"`
	OCR       OCR       `toml:"ocr"`
	Vision    Vision    `toml:"vision"`
	Clips     Clips     `toml:"clips"`
	Fetch     Fetch     `toml:"fetch"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vodsnip/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vodsnip.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a detection run writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir, c.Paths.ClipsDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used to inspect recordings.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
