// Package ocr abstracts text extraction from cropped frame images. The
// production implementation wraps Tesseract via gosseract; tests and the
// cache layer depend only on the Engine interface.
package ocr
