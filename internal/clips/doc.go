// Package clips cuts detected segments out of a VOD into standalone files
// with ffmpeg, preferring a fast copy-codec cut and re-encoding only when
// the container refuses.
package clips
