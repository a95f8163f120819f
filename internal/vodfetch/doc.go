// Package vodfetch wraps the external tools that acquire source material:
// twitch-dl for VOD download, TwitchDownloaderCLI for chat download and
// rendering, and ffmpeg for side-by-side compositing of the two.
package vodfetch
