// Package detect implements the segment detection engine: a sequential
// coarse scan over sampled OCR text, binary-search boundary location for
// each identity run, once-per-identity title resolution, and a merge pass
// that repairs OCR noise and brief dropouts into a final ordered list of
// non-overlapping segments.
package detect
