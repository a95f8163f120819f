// Package identity extracts YouTube video identity tokens from OCR text and
// fuzzy-compares identities and titles across samples.
//
// Extraction tries URL-shaped patterns first (watch?v=, youtu.be, shorts,
// embed), then bare 11-character tokens, then a looser alphanumeric fallback
// for partially garbled reads. Comparison is handled by Judge, which layers
// exact, case-insensitive, and prefix heuristics over a token-sort similarity
// ratio so that single-character OCR errors do not split one video into two.
package identity
