package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"vodsnip/internal/config"
	"vodsnip/internal/services"
)

// TesseractEngine runs OCR through a shared Tesseract client. The underlying
// client is not safe for concurrent use, so calls are serialized with a
// mutex.
type TesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
	closed bool
}

// NewTesseractEngine initializes a Tesseract client configured for reading
// small banner crops.
func NewTesseractEngine(cfg config.OCR) (*TesseractEngine, error) {
	client := gosseract.NewClient()
	if len(cfg.Languages) > 0 {
		if err := client.SetLanguage(cfg.Languages...); err != nil {
			_ = client.Close()
			return nil, services.Wrap(services.ErrConfiguration, "ocr", "init",
				fmt.Sprintf("Unsupported OCR languages %q", strings.Join(cfg.Languages, "+")), err)
		}
	}
	if cfg.Whitelist != "" {
		if err := client.SetWhitelist(cfg.Whitelist); err != nil {
			_ = client.Close()
			return nil, services.Wrap(services.ErrConfiguration, "ocr", "init", "Invalid OCR character whitelist", err)
		}
	}
	if cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
			_ = client.Close()
			return nil, services.Wrap(services.ErrConfiguration, "ocr", "init",
				fmt.Sprintf("Invalid page segmentation mode %d", cfg.PageSegMode), err)
		}
	}
	return &TesseractEngine{client: client}, nil
}

// ExtractText reads the text content of a single crop image. Whitespace runs
// are collapsed so cached values compare cleanly.
func (e *TesseractEngine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", services.Wrap(services.ErrValidation, "ocr", "extract", "OCR engine already closed", nil)
	}
	if err := e.client.SetImage(imagePath); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ocr", "extract",
			fmt.Sprintf("Failed to load image %s", imagePath), err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ocr", "extract",
			fmt.Sprintf("OCR failed on %s", imagePath), err)
	}
	return strings.Join(strings.Fields(text), " "), nil
}

// Close releases the native Tesseract client. Safe to call more than once.
func (e *TesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.client.Close()
}
