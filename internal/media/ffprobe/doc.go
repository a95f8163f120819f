// Package ffprobe wraps the ffprobe command-line tool for inspecting VOD
// containers. Detection only needs the duration (to size the sample index)
// and the video dimensions (to sanity-check the crop regions), so the parsed
// surface is kept small.
package ffprobe
