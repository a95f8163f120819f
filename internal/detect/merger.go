package detect

import (
	"sort"

	"vodsnip/internal/identity"
)

// Merger collapses raw segments that are adjacent or overlapping and share
// an identity or title into canonical segments. OCR dropouts routinely split
// one real run into several raw segments; the merger repairs that.
type Merger struct {
	Judge             identity.Judge
	MaxGapSeconds     float64
	MinSegmentSeconds float64
}

// Merge sorts the input by start time, then alternates an accumulator walk
// with a minimum-duration filter until neither changes the list. Dropping a
// short segment can leave its two neighbors adjacent and mergeable, so a
// single walk-then-filter pass is not a fixed point. Output segments are
// sorted, pairwise disjoint, never more numerous than the input, and stable
// under a second Merge.
func (m Merger) Merge(input []Segment) []Segment {
	if len(input) == 0 {
		return nil
	}

	segments := make([]Segment, len(input))
	copy(segments, input)
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].StartSec != segments[j].StartSec {
			return segments[i].StartSec < segments[j].StartSec
		}
		return segments[i].EndSec < segments[j].EndSec
	})

	for {
		kept := m.filterShort(m.mergePass(segments))
		if len(kept) == len(segments) {
			if len(kept) == 0 {
				return nil
			}
			return kept
		}
		segments = kept
	}
}

func (m Merger) mergePass(segments []Segment) []Segment {
	if len(segments) == 0 {
		return nil
	}
	merged := make([]Segment, 0, len(segments))
	current := segments[0]
	for _, next := range segments[1:] {
		if m.canMerge(current, next) {
			if next.EndSec > current.EndSec {
				current.EndSec = next.EndSec
			}
			current.Identity = longer(current.Identity, next.Identity)
			current.Title = longer(current.Title, next.Title)
			continue
		}
		// Dissimilar neighbors must still come out disjoint.
		if next.StartSec <= current.EndSec {
			next.StartSec = current.EndSec + 1
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

func (m Merger) filterShort(segments []Segment) []Segment {
	kept := segments[:0]
	for _, segment := range segments {
		if segment.EndSec-segment.StartSec < m.MinSegmentSeconds {
			continue
		}
		if segment.StartSec >= segment.EndSec {
			continue
		}
		kept = append(kept, segment)
	}
	return kept
}

func (m Merger) canMerge(current, next Segment) bool {
	if next.StartSec-current.EndSec > m.MaxGapSeconds {
		return false
	}
	return m.Judge.SameIdentity(current.Identity, next.Identity) ||
		m.Judge.SimilarTitle(current.Title, next.Title)
}

// longer picks the longer of two strings, a cheap proxy for the more
// complete OCR read.
func longer(a, b string) string {
	if len(b) > len(a) {
		return b
	}
	return a
}
