package convert

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// renderPages rasterises every page of a PDF. pdftoppm is used when it is
// installed; otherwise the embedded page images are extracted with pdfcpu,
// which covers the usual one-image-per-page scan.
func renderPages(ctx context.Context, data []byte, workDir string, dpi int, logger *slog.Logger) ([]image.Image, error) {
	if _, err := exec.LookPath("pdftoppm"); err == nil {
		return renderPoppler(ctx, data, workDir, dpi)
	}
	logger.DebugContext(ctx, "pdftoppm not found, extracting embedded page images")
	return extractPageImages(ctx, data)
}

func renderPoppler(ctx context.Context, data []byte, workDir string, dpi int) ([]image.Image, error) {
	n := pageCount(data)
	if n <= 0 {
		return nil, fmt.Errorf("render pdf: cannot determine page count")
	}
	src := filepath.Join(workDir, "source.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	pages := make([]image.Image, 0, n)
	for i := 1; i <= n; i++ {
		prefix := filepath.Join(workDir, "page_"+strconv.Itoa(i))
		cmd := exec.CommandContext(ctx, "pdftoppm",
			"-f", strconv.Itoa(i),
			"-l", strconv.Itoa(i),
			"-png",
			"-r", strconv.Itoa(dpi),
			"-singlefile",
			src, prefix,
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("pdftoppm page %d failed: %w, output: %s", i, err, out)
		}
		img, err := loadImage(prefix + ".png")
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i, err)
		}
		os.Remove(prefix + ".png")
		pages = append(pages, img)
	}
	return pages, nil
}

func extractPageImages(ctx context.Context, data []byte) ([]image.Image, error) {
	conf := model.NewDefaultConfiguration()
	var pages []image.Image
	err := api.ExtractImages(bytes.NewReader(data), nil, func(img model.Image, _ bool, _ int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		decoded, _, err := image.Decode(img)
		if err != nil {
			return fmt.Errorf("decode page %d image %s: %w", img.PageNr, img.Name, err)
		}
		pages = append(pages, decoded)
		return nil
	}, conf)
	if err != nil {
		return nil, fmt.Errorf("extract page images: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("extract page images: no images found (install poppler-utils for full rendering)")
	}
	return pages, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
