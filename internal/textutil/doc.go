// Package textutil provides the string similarity metric and filename
// helpers used by segment detection.
//
// The similarity metric is a token-sort Levenshtein ratio: tokens are
// normalized, sorted, rejoined, and compared by edit distance, yielding a
// score in [0,1] that tolerates the 1-3 character substitutions low-quality
// OCR reliably produces. All thresholds in the repository are calibrated to
// this metric.
package textutil
