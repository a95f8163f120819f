// Package ocrcache persists per-sample OCR results as a JSON file keyed by
// sample index. OCR dominates detection cost, so every read is memoized:
// cache hits pay no OCR work at all, and a finished cache makes re-running
// detection with different thresholds nearly free.
package ocrcache
