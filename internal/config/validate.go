package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateROIs(); err != nil {
		return err
	}
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateVision(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateROIs() error {
	for name, roi := range map[string]ROI{"rois.identity": c.ROIs.Identity, "rois.title": c.ROIs.Title} {
		if roi.WFrac <= 0 || roi.HFrac <= 0 {
			return fmt.Errorf("%s: width and height fractions must be positive", name)
		}
		if roi.XFrac < 0 || roi.YFrac < 0 {
			return fmt.Errorf("%s: origin fractions must be non-negative", name)
		}
		if roi.XFrac+roi.WFrac > 1 || roi.YFrac+roi.HFrac > 1 {
			return fmt.Errorf("%s: region extends past the frame edge", name)
		}
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.SimilarityThreshold <= 0 || c.Detection.SimilarityThreshold > 1 {
		return errors.New("detection.similarity_threshold must be in (0, 1]")
	}
	if c.Detection.MaxGapSeconds < c.Detection.IntervalSeconds {
		return errors.New("detection.max_gap_seconds must be at least one sample interval")
	}
	return nil
}

func (c *Config) validateVision() error {
	if !c.Vision.Enabled {
		return nil
	}
	if c.Vision.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/vodsnip/config.toml"
		}
		return fmt.Errorf("vision.api_key is required when vision.enabled is true. Set VODSNIP_VISION_API_KEY env var or edit %s (create with 'vodsnip config init')", defaultPath)
	}
	return nil
}
