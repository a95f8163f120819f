package detect

// RawSegment is a single detected run of one identity, in sample indices,
// before merge-repair. Both bounds are inclusive.
type RawSegment struct {
	Identity    string
	StartSample int
	EndSample   int
	Title       string
}

// Segment is a final merged span in VOD seconds. The detector guarantees
// that returned segments are sorted by StartSec and pairwise disjoint.
type Segment struct {
	Identity string  `json:"identity"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Title    string  `json:"title"`
}

// DurationSeconds returns the span length of the segment.
func (s Segment) DurationSeconds() float64 {
	return s.EndSec - s.StartSec
}
