// Package frames extracts cropped sample frames from a VOD and maps sample
// indices onto the resulting image files.
//
// Each screen region (identity banner, title banner) gets its own ffmpeg
// pass at a fixed sampling rate, producing frame_0001.jpg onward. The Index
// converts between zero-based sample indices, VOD timestamps, and per-region
// crop paths; everything downstream works in sample indices.
package frames
