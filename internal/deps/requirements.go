package deps

import "vodsnip/internal/config"

// Requirements lists the external tools a full vodsnip pipeline uses. Only
// ffmpeg, ffprobe, and Tesseract are needed for detection itself; the rest
// serve download and chat rendering.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Frame extraction and clip cutting",
			VersionArgs: []string{"-version"},
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "VOD duration and dimension inspection",
			VersionArgs: []string{"-version"},
		},
		{
			Name:        "Tesseract",
			Command:     "tesseract",
			Description: "OCR engine (linked via libtesseract)",
			VersionArgs: []string{"--version"},
		},
		{
			Name:        "twitch-dl",
			Command:     cfg.Fetch.TwitchDLBinary,
			Description: "VOD download",
			Optional:    true,
			VersionArgs: []string{"--version"},
		},
		{
			Name:        "TwitchDownloaderCLI",
			Command:     cfg.Fetch.DownloaderBinary,
			Description: "Chat download and rendering",
			Optional:    true,
		},
	}
}
