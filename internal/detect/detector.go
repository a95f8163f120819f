package detect

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"vodsnip/internal/config"
	"vodsnip/internal/identity"
	"vodsnip/internal/logging"
	"vodsnip/internal/ocrcache"
	"vodsnip/internal/services"
)

// Frames maps sample indices to timestamps and title-region crop images.
type Frames interface {
	Count() int
	Time(index int) float64
	TitleCrop(index int) (string, error)
}

// TextSource supplies per-sample OCR text, typically the OCR cache.
type TextSource interface {
	Get(ctx context.Context, index int) (ocrcache.Entry, error)
}

// TitleResolver extracts a human-readable title from a title-region crop.
// Failures degrade to the sentinel title and never abort a run.
type TitleResolver interface {
	ResolveTitle(ctx context.Context, imagePath string) (string, error)
}

// Params are the tuning knobs of a detection run.
type Params struct {
	IntervalSeconds     int
	ScanStride          int
	LookbackSamples     int
	EndBufferSamples    int
	MaxGapSeconds       float64
	MinSegmentSeconds   float64
	SimilarityThreshold float64
}

// ParamsFromConfig derives detection parameters from configuration. The
// lookback window is sized so start location can never reach further back
// than the merge gap would bridge anyway.
func ParamsFromConfig(cfg config.Detection) Params {
	lookback := cfg.MaxGapSeconds / cfg.IntervalSeconds
	if lookback < 1 {
		lookback = 1
	}
	return Params{
		IntervalSeconds:     cfg.IntervalSeconds,
		ScanStride:          cfg.ScanStride,
		LookbackSamples:     lookback,
		EndBufferSamples:    cfg.EndBufferSamples,
		MaxGapSeconds:       float64(cfg.MaxGapSeconds),
		MinSegmentSeconds:   float64(cfg.MinSegmentSeconds),
		SimilarityThreshold: cfg.SimilarityThreshold,
	}
}

func (p Params) validate() error {
	if p.IntervalSeconds <= 0 {
		return services.Wrap(services.ErrValidation, "detect", "run", "Sampling interval must be positive", nil)
	}
	if p.ScanStride <= 0 {
		return services.Wrap(services.ErrValidation, "detect", "run", "Scan stride must be positive", nil)
	}
	if p.SimilarityThreshold <= 0 || p.SimilarityThreshold > 1 {
		return services.Wrap(services.ErrValidation, "detect", "run", "Similarity threshold must be in (0, 1]", nil)
	}
	return nil
}

// Result is the outcome of one detection run.
type Result struct {
	RunID    string
	Raw      []RawSegment
	Segments []Segment
}

// Detector drives the full segment-detection pass over a sampled VOD: a
// sequential coarse scan, boundary location for each identity run, title
// resolution, and the final merge.
type Detector struct {
	params   Params
	frames   Frames
	source   TextSource
	resolver TitleResolver
	judge    identity.Judge
	logger   *slog.Logger
	progress func(done, total int)

	titles map[string]string
}

// New assembles a Detector. resolver may be nil, in which case titles fall
// back to the OCR'd title-region text.
func New(params Params, frames Frames, source TextSource, resolver TitleResolver, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Detector{
		params:   params,
		frames:   frames,
		source:   source,
		resolver: resolver,
		judge:    identity.NewJudge(params.SimilarityThreshold),
		logger:   logging.NewComponentLogger(logger, "detect"),
		titles:   make(map[string]string),
	}
}

// SetProgress installs a callback invoked as the scan position advances.
func (d *Detector) SetProgress(fn func(done, total int)) {
	d.progress = fn
}

// Run executes the detection pass. An empty segment list is a valid outcome;
// Run only fails on invalid parameters or context cancellation.
func (d *Detector) Run(ctx context.Context) (Result, error) {
	if err := d.params.validate(); err != nil {
		return Result{}, err
	}
	if d.frames.Count() == 0 {
		return Result{}, services.Wrap(services.ErrValidation, "detect", "run", "Sample index is empty", nil)
	}

	runID := uuid.NewString()
	d.logger.Info("starting detection run",
		logging.String("run_id", runID),
		logging.Int("samples", d.frames.Count()),
		logging.Int("stride", d.params.ScanStride))

	raw, err := d.scan(ctx)
	if err != nil {
		return Result{}, err
	}

	merger := Merger{
		Judge:             d.judge,
		MaxGapSeconds:     d.params.MaxGapSeconds,
		MinSegmentSeconds: d.params.MinSegmentSeconds,
	}
	segments := merger.Merge(d.toSeconds(raw))

	d.logger.Info("detection run complete",
		logging.String("run_id", runID),
		logging.Int("raw_segments", len(raw)),
		logging.Int("segments", len(segments)))

	return Result{RunID: runID, Raw: raw, Segments: segments}, nil
}

func (d *Detector) toSeconds(raw []RawSegment) []Segment {
	segments := make([]Segment, 0, len(raw))
	for _, r := range raw {
		segments = append(segments, Segment{
			Identity: r.Identity,
			StartSec: d.frames.Time(r.StartSample),
			EndSec:   d.frames.Time(r.EndSample),
			Title:    r.Title,
		})
	}
	return segments
}

func (d *Detector) reportProgress(done int) {
	if d.progress == nil {
		return
	}
	total := d.frames.Count()
	if done > total {
		done = total
	}
	d.progress(done, total)
}
