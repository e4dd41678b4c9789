//go:build ocr

// Package ocr wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract and its English traineddata to be installed. On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Build with -tags ocr to enable it; without the tag every call returns
// ErrOCRNotEnabled.
package ocr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ErrOCRNotEnabled is returned by the stub build. Declared here too so
// callers can match on it regardless of build tags.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client wraps one Tesseract handle. It is not safe for concurrent use;
// create one per request.
type Client struct {
	client *gosseract.Client
}

// New creates a client recognising lang (e.g. "eng").
func New(lang string) (*Client, error) {
	client := gosseract.NewClient()
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language %q: %w", lang, err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on encoded image data (PNG, TIFF, JPEG, ...).
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
