package identity

import (
	"regexp"
	"strings"
	"unicode"
)

// Extraction patterns, tried in order: URL-embedded ID, bare 11-character
// token, then any alphanumeric run as a last resort for partial OCR reads.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?v=|shorts/|embed/|v/))([\w-]{11})`),
	regexp.MustCompile(`\b([\w-]{11})\b`),
	regexp.MustCompile(`([A-Za-z0-9_-]{5,})`),
}

// Words OCR picks up from player chrome that look token-shaped but never are
// identities.
var nonIDKeywords = map[string]struct{}{
	"youtube":     {},
	"subscribe":   {},
	"subscribed":  {},
	"share":       {},
	"download":    {},
	"autoplay":    {},
	"recommended": {},
}

const minIdentityLength = 5

// Extract parses a platform-ID-shaped token out of raw OCR text. It returns
// the first pattern match that is long enough, contains at least one letter
// (pure-digit runs are frame-counter artifacts), and is not a known non-ID
// keyword. The boolean is false when no acceptable token exists.
func Extract(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, pattern := range idPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := match[1]
		if acceptable(candidate) {
			return candidate, true
		}
		// A pattern matched but produced an artifact; later, looser patterns
		// would only rematch inside the same junk.
		return "", false
	}
	return "", false
}

func acceptable(candidate string) bool {
	if len(candidate) < minIdentityLength {
		return false
	}
	if _, known := nonIDKeywords[strings.ToLower(candidate)]; known {
		return false
	}
	for _, r := range candidate {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
