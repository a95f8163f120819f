package config

const (
	defaultWorkDir  = "~/.local/share/vodsnip/work"
	defaultLogDir   = "~/.local/share/vodsnip/logs"
	defaultClipsDir = "~/.local/share/vodsnip/clips"

	defaultIntervalSeconds     = 3
	defaultScanStride          = 3
	defaultMaxGapSeconds       = 60
	defaultMinSegmentSeconds   = 5
	defaultSimilarityThreshold = 0.7
	defaultEndBufferSamples    = 5
	defaultCacheFlushEvery     = 100

	// Characters that can legitimately appear in a burned-in video URL or ID.
	defaultOCRWhitelist   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789:/.?=&_-"
	defaultOCRPageSegMode = 7 // single text line

	defaultVisionBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultVisionModel          = "openai/gpt-4o-mini"
	defaultVisionReferer        = "https://github.com/vodsnip/vodsnip"
	defaultVisionTitle          = "Vodsnip Title Resolver"
	defaultVisionTimeoutSeconds = 60

	defaultClipNamePrefix = "Reacts to"

	defaultTwitchDLBinary   = "twitch-dl"
	defaultDownloaderBinary = "TwitchDownloaderCLI"
	defaultFetchQuality     = "1080p60"
	defaultChatWidth        = 422
	defaultChatHeight       = 1080
	defaultChatFramerate    = 30
	defaultChatFontSize     = 18

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults. The ROI
// geometry matches a 1080p composite with the embedded player in the upper
// left and the title bar along the bottom edge of the player.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			LogDir:   defaultLogDir,
			ClipsDir: defaultClipsDir,
		},
		ROIs: ROIs{
			Identity: ROI{XFrac: 0.055, YFrac: 0.03, WFrac: 0.4, HFrac: 0.06},
			Title:    ROI{XFrac: 0.03, YFrac: 0.875, WFrac: 0.4, HFrac: 0.0475},
		},
		Detection: Detection{
			IntervalSeconds:     defaultIntervalSeconds,
			ScanStride:          defaultScanStride,
			MaxGapSeconds:       defaultMaxGapSeconds,
			MinSegmentSeconds:   defaultMinSegmentSeconds,
			SimilarityThreshold: defaultSimilarityThreshold,
			EndBufferSamples:    defaultEndBufferSamples,
			CacheFlushEvery:     defaultCacheFlushEvery,
		},
		OCR: OCR{
			Languages:   []string{"eng"},
			Whitelist:   defaultOCRWhitelist,
			PageSegMode: defaultOCRPageSegMode,
		},
		Vision: Vision{
			Enabled:        true,
			BaseURL:        defaultVisionBaseURL,
			Model:          defaultVisionModel,
			Referer:        defaultVisionReferer,
			Title:          defaultVisionTitle,
			TimeoutSeconds: defaultVisionTimeoutSeconds,
		},
		Clips: Clips{
			Enabled:    true,
			NamePrefix: defaultClipNamePrefix,
		},
		Fetch: Fetch{
			TwitchDLBinary:   defaultTwitchDLBinary,
			DownloaderBinary: defaultDownloaderBinary,
			Quality:          defaultFetchQuality,
			ChatWidth:        defaultChatWidth,
			ChatHeight:       defaultChatHeight,
			ChatFramerate:    defaultChatFramerate,
			ChatFontSize:     defaultChatFontSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
