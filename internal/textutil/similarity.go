package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, strips combining marks, and collapses
// whitespace. OCR output on burned-in text frequently carries stray
// diacritics and irregular spacing.
func Normalize(text string) string {
	cleaned, _, err := transform.String(stripMarks, text)
	if err != nil {
		cleaned = text
	}
	return strings.Join(strings.Fields(strings.ToLower(cleaned)), " ")
}

// Tokenize splits normalized text into alphanumeric tokens.
func Tokenize(text string) []string {
	raw := tokenSplitPattern.Split(Normalize(text), -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// Ratio computes a normalized Levenshtein similarity in [0,1] between two
// strings after normalization. Identical strings score 1, fully disjoint
// strings score 0.
func Ratio(a, b string) float64 {
	a = Normalize(a)
	b = Normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= longest {
		return 0
	}
	return 1 - float64(dist)/float64(longest)
}

// TokenSortRatio computes Ratio over the two strings with their tokens
// sorted, making the score insensitive to word order. This is the single
// similarity metric used throughout segment detection; thresholds elsewhere
// are calibrated against it and are not interchangeable with other metrics.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(text string) string {
	tokens := Tokenize(text)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
