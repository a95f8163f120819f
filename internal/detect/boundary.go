package detect

// probeFunc reports whether the sample at an index still belongs to the
// target identity run.
type probeFunc func(index int) bool

// searchFirst returns the smallest index in [lo, hi] for which probe is
// true. It assumes the probe is monotone over the window (a run of false
// followed by a run of true) with probe(hi) known true. OCR flicker can
// violate that assumption; when it does, the search settles on the first
// match it happens to check rather than the true boundary.
func searchFirst(lo, hi int, probe probeFunc) int {
	for lo < hi {
		mid := lo + (hi-lo)/2
		if probe(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// searchLast returns the largest index in [lo, hi] for which probe is true,
// under the mirrored assumption that probe(lo) is known true.
func searchLast(lo, hi int, probe probeFunc) int {
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if probe(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
