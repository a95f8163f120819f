package detect

import (
	"context"

	"vodsnip/internal/identity"
	"vodsnip/internal/logging"
)

// scan is the sequential driving loop. It is inherently serial: whether an
// iteration skips ahead or begins boundary location depends on the end of
// the previous segment, so no two boundary searches may run at once.
func (d *Detector) scan(ctx context.Context) ([]RawSegment, error) {
	var raw []RawSegment
	count := d.frames.Count()
	lastEnd := -1

	index := 0
	for index < count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.reportProgress(index)

		id, text := d.sample(ctx, index)
		if id == "" {
			index += d.params.ScanStride
			continue
		}

		start := d.locateStart(ctx, index, lastEnd, id, text)
		end := d.locateEnd(ctx, index, id)
		end = d.bufferEnd(ctx, end, id)

		segment := RawSegment{
			Identity:    id,
			StartSample: start,
			EndSample:   end,
			Title:       d.titleFor(ctx, id, start),
		}
		raw = append(raw, segment)
		d.logger.Info("identity run located",
			logging.String("identity", id),
			logging.Int("start_sample", start),
			logging.Int("end_sample", end),
			logging.Float64("start_sec", d.frames.Time(start)),
			logging.Float64("end_sec", d.frames.Time(end)))

		lastEnd = end
		index = end + 1
	}
	d.reportProgress(count)
	return raw, nil
}

// sample returns the extracted identity and the raw identity-region text at
// an index. OCR failures and empty reads are "no identity visible", never
// errors.
func (d *Detector) sample(ctx context.Context, index int) (string, string) {
	entry, err := d.source.Get(ctx, index)
	if err != nil {
		return "", ""
	}
	id, ok := identity.Extract(entry.IdentityText)
	if !ok {
		return "", entry.IdentityText
	}
	return id, entry.IdentityText
}

// locateStart binary-searches backward from the originating sample for the
// first sample still carrying the target identity. The window is clamped to
// never reach into the previous segment and to the configured lookback.
func (d *Detector) locateStart(ctx context.Context, origin, lastEnd int, target, originText string) int {
	lo := origin - d.params.LookbackSamples
	if floor := lastEnd + 1; floor > lo {
		lo = floor
	}
	if lo < 0 {
		lo = 0
	}
	if lo >= origin {
		return origin
	}
	return searchFirst(lo, origin, func(mid int) bool {
		return d.matchesTarget(ctx, mid, target, originText)
	})
}

// locateEnd finds the last sample carrying the target identity: a coarse
// forward stride from the originating sample until the first mismatch, then
// a binary search inside that bracket. Reaching the end of the recording
// without a mismatch extends the segment to the last sample.
func (d *Detector) locateEnd(ctx context.Context, origin int, target string) int {
	count := d.frames.Count()
	lastMatch := origin
	probe := origin + d.params.ScanStride
	for probe < count {
		if !d.matchesTarget(ctx, probe, target, "") {
			break
		}
		lastMatch = probe
		probe += d.params.ScanStride
	}
	if probe >= count {
		return count - 1
	}
	if probe-lastMatch <= 1 {
		return lastMatch
	}
	return searchLast(lastMatch, probe-1, func(mid int) bool {
		return d.matchesTarget(ctx, mid, target, "")
	})
}

// bufferEnd inspects the sample just past the located end. A different
// identity there means a new segment starts immediately, so the end stays
// exact; no identity at all suggests a transition or fade, so a fixed buffer
// is appended, capped at the last sample.
func (d *Detector) bufferEnd(ctx context.Context, end int, target string) int {
	last := d.frames.Count() - 1
	if end >= last {
		return last
	}
	next, _ := d.sample(ctx, end+1)
	if next != "" {
		return end
	}
	buffered := end + d.params.EndBufferSamples
	if buffered > last {
		buffered = last
	}
	return buffered
}

// matchesTarget is the boundary probe. A parseable identity decides by
// identity match; when no identity parses but text is present, raw-text
// similarity against the originating sample's text stands in for
// continuity.
func (d *Detector) matchesTarget(ctx context.Context, index int, target, originText string) bool {
	id, text := d.sample(ctx, index)
	if id != "" {
		return d.judge.SameIdentity(id, target)
	}
	if text == "" || originText == "" {
		return false
	}
	return d.judge.SimilarText(text, originText)
}
