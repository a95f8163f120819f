package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDetection()
	c.normalizeOCR()
	c.normalizeVision()
	c.normalizeClips()
	c.normalizeFetch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ClipsDir) == "" {
		c.Paths.ClipsDir = defaultClipsDir
	}
	if c.Paths.ClipsDir, err = expandPath(c.Paths.ClipsDir); err != nil {
		return fmt.Errorf("paths.clips_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDetection() {
	if c.Detection.IntervalSeconds <= 0 {
		c.Detection.IntervalSeconds = defaultIntervalSeconds
	}
	if c.Detection.ScanStride <= 0 {
		c.Detection.ScanStride = defaultScanStride
	}
	if c.Detection.MaxGapSeconds <= 0 {
		c.Detection.MaxGapSeconds = defaultMaxGapSeconds
	}
	if c.Detection.MinSegmentSeconds <= 0 {
		c.Detection.MinSegmentSeconds = defaultMinSegmentSeconds
	}
	if c.Detection.SimilarityThreshold <= 0 {
		c.Detection.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Detection.EndBufferSamples < 0 {
		c.Detection.EndBufferSamples = defaultEndBufferSamples
	}
	if c.Detection.CacheFlushEvery <= 0 {
		c.Detection.CacheFlushEvery = defaultCacheFlushEvery
	}
}

func (c *Config) normalizeOCR() {
	if len(c.OCR.Languages) == 0 {
		c.OCR.Languages = []string{"eng"}
	} else {
		langs := make([]string, 0, len(c.OCR.Languages))
		seen := make(map[string]struct{}, len(c.OCR.Languages))
		for _, lang := range c.OCR.Languages {
			normalized := strings.ToLower(strings.TrimSpace(lang))
			if normalized == "" {
				continue
			}
			if _, exists := seen[normalized]; exists {
				continue
			}
			seen[normalized] = struct{}{}
			langs = append(langs, normalized)
		}
		if len(langs) == 0 {
			langs = []string{"eng"}
		}
		c.OCR.Languages = langs
	}
	if strings.TrimSpace(c.OCR.Whitelist) == "" {
		c.OCR.Whitelist = defaultOCRWhitelist
	}
	if c.OCR.PageSegMode <= 0 {
		c.OCR.PageSegMode = defaultOCRPageSegMode
	}
}

func (c *Config) normalizeVision() {
	c.Vision.APIKey = strings.TrimSpace(c.Vision.APIKey)
	if c.Vision.APIKey == "" {
		if value, ok := os.LookupEnv("VODSNIP_VISION_API_KEY"); ok {
			c.Vision.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.Vision.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.Vision.APIKey = strings.TrimSpace(value)
		}
	}
	c.Vision.BaseURL = strings.TrimSpace(c.Vision.BaseURL)
	if c.Vision.BaseURL == "" {
		c.Vision.BaseURL = defaultVisionBaseURL
	}
	c.Vision.Model = strings.TrimSpace(c.Vision.Model)
	if c.Vision.Model == "" {
		c.Vision.Model = defaultVisionModel
	}
	c.Vision.Referer = strings.TrimSpace(c.Vision.Referer)
	if c.Vision.Referer == "" {
		c.Vision.Referer = defaultVisionReferer
	}
	c.Vision.Title = strings.TrimSpace(c.Vision.Title)
	if c.Vision.Title == "" {
		c.Vision.Title = defaultVisionTitle
	}
	if c.Vision.TimeoutSeconds <= 0 {
		c.Vision.TimeoutSeconds = defaultVisionTimeoutSeconds
	}
}

func (c *Config) normalizeClips() {
	c.Clips.NamePrefix = strings.TrimSpace(c.Clips.NamePrefix)
	if c.Clips.NamePrefix == "" {
		c.Clips.NamePrefix = defaultClipNamePrefix
	}
}

func (c *Config) normalizeFetch() {
	if strings.TrimSpace(c.Fetch.TwitchDLBinary) == "" {
		c.Fetch.TwitchDLBinary = defaultTwitchDLBinary
	}
	if strings.TrimSpace(c.Fetch.DownloaderBinary) == "" {
		c.Fetch.DownloaderBinary = defaultDownloaderBinary
	}
	if strings.TrimSpace(c.Fetch.Quality) == "" {
		c.Fetch.Quality = defaultFetchQuality
	}
	if c.Fetch.ChatWidth <= 0 {
		c.Fetch.ChatWidth = defaultChatWidth
	}
	if c.Fetch.ChatHeight <= 0 {
		c.Fetch.ChatHeight = defaultChatHeight
	}
	if c.Fetch.ChatFramerate <= 0 {
		c.Fetch.ChatFramerate = defaultChatFramerate
	}
	if c.Fetch.ChatFontSize <= 0 {
		c.Fetch.ChatFontSize = defaultChatFontSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
