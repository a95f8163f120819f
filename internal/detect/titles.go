package detect

import (
	"context"
	"strings"

	"vodsnip/internal/identity"
	"vodsnip/internal/logging"
)

// titleFor resolves the title for an identity at most once per run. The
// vision resolver is tried first when configured; on failure or absence the
// OCR'd title-region text stands in, and the sentinel covers everything
// else.
func (d *Detector) titleFor(ctx context.Context, id string, sampleIndex int) string {
	if title, ok := d.titles[id]; ok {
		return title
	}
	title := d.resolveTitle(ctx, id, sampleIndex)
	d.titles[id] = title
	return title
}

func (d *Detector) resolveTitle(ctx context.Context, id string, sampleIndex int) string {
	if d.resolver != nil {
		path, err := d.frames.TitleCrop(sampleIndex)
		if err == nil {
			title, err := d.resolver.ResolveTitle(ctx, path)
			if err == nil {
				if title = strings.TrimSpace(title); title != "" {
					return title
				}
			} else {
				d.logger.Warn("title resolution failed",
					logging.String("identity", id),
					logging.Error(err),
					logging.String(logging.FieldImpact, "segment keeps OCR title or sentinel"))
			}
		}
	}
	if entry, err := d.source.Get(ctx, sampleIndex); err == nil {
		if text := strings.TrimSpace(entry.TitleText); text != "" {
			return text
		}
	}
	return identity.NoTitle
}
