package identity

import (
	"strings"

	"vodsnip/internal/textutil"
)

// NoTitle is the sentinel stored when title resolution failed or produced
// nothing usable. It never matches anything, including itself.
const NoTitle = "No Title"

const prefixMatchLength = 5

// Judge fuzzy-compares identity and title strings under a configured
// similarity threshold. OCR on low-resolution burned-in text reliably garbles
// a few characters, so exact comparison alone splits segments that belong
// together; the judge layers cheap heuristics before the full ratio
// computation.
type Judge struct {
	Threshold float64
}

// NewJudge returns a Judge with the given token-sort ratio threshold.
func NewJudge(threshold float64) Judge {
	return Judge{Threshold: threshold}
}

// SameIdentity reports whether two identity tokens plausibly denote the same
// video. Empty strings never match. Exact and case-insensitive equality are
// accepted first, then a shared 5-character prefix (cheap tolerance for a
// garbled tail), then the token-sort ratio against the threshold.
func (j Judge) SameIdentity(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b || strings.EqualFold(a, b) {
		return true
	}
	if len(a) >= prefixMatchLength && len(b) >= prefixMatchLength &&
		strings.EqualFold(a[:prefixMatchLength], b[:prefixMatchLength]) {
		return true
	}
	return textutil.TokenSortRatio(a, b) >= j.Threshold
}

// SimilarTitle reports whether two titles plausibly describe the same video.
// Empty titles and the NoTitle sentinel never match.
func (j Judge) SimilarTitle(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	if a == NoTitle || b == NoTitle {
		return false
	}
	if a == b {
		return true
	}
	return textutil.TokenSortRatio(a, b) >= j.Threshold
}

// SimilarText reports whether two raw OCR text blobs are close enough to
// assume continuity. Used as the boundary-probe fallback when no parseable
// identity is present at a probe sample.
func (j Judge) SimilarText(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	return textutil.TokenSortRatio(a, b) >= j.Threshold
}
