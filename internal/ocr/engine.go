package ocr

import "context"

// Engine reads text out of a cropped frame image. Implementations may hold
// native resources and must be closed when no longer needed.
type Engine interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
	Close() error
}
