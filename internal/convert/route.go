package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for file extensions no adapter handles.
var ErrUnsupported = errors.New("unsupported file type")

// Extensions lists the accepted upload extensions.
var Extensions = []string{".docx", ".pdf", ".png", ".jpg", ".jpeg"}

// Route picks the processing path for a file by extension, probing PDFs
// for an extractable text layer.
func Route(ctx context.Context, name string, data []byte) (Kind, error) {
	return route(ctx, name, data, slog.Default())
}

func route(ctx context.Context, name string, data []byte, logger *slog.Logger) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".docx":
		return KindStructured, nil
	case ".png", ".jpg", ".jpeg":
		return KindImage, nil
	case ".pdf":
		ok, err := hasTextLayer(data)
		if err != nil {
			// unreadable PDFs are treated like scans
			logger.DebugContext(ctx, "pdf text probe failed, routing to OCR", "file", name, "error", err)
			return KindScannedPDF, nil
		}
		if ok {
			return KindTextPDF, nil
		}
		return KindScannedPDF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}
