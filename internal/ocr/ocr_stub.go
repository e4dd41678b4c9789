//go:build !ocr

// Package ocr wraps the Tesseract OCR engine.
//
// This is the stub used when the "ocr" build tag is not set: image
// preprocessing works, recognition returns ErrOCRNotEnabled. Rebuild with
//
//	go build -tags ocr
//
// to link Tesseract.
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New(lang string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
