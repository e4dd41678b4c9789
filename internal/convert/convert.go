// Package convert turns an uploaded document into a translated .docx:
// route by file type, extract paragraphs, translate every run, assemble.
package convert

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fumiama/go-docx"
	"github.com/google/uuid"

	"github.com/thywilljoshua/doc-translate/internal/ocr"
	"github.com/thywilljoshua/doc-translate/internal/translate"
)

// Run processes one document. On success the output lives in a private
// scratch directory until the returned cleanup func is called; on error
// nothing is left behind and cleanup is a no-op.
func Run(ctx context.Context, name string, data []byte, cfg Config) (Result, func(), error) {
	cfg.defaults()
	noop := func() {}

	if cfg.Translator == nil {
		return Result{}, noop, errors.New("convert: no translator configured")
	}
	if _, err := translate.Lookup(cfg.Target); err != nil {
		return Result{}, noop, err
	}
	kind, err := route(ctx, name, data, cfg.Logger)
	if err != nil {
		return Result{}, noop, err
	}

	dir, err := os.MkdirTemp(cfg.WorkDir, "doctranslate-*")
	if err != nil {
		return Result{}, noop, fmt.Errorf("create work dir: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			cfg.Logger.Warn("remove work dir", "dir", dir, "error", err)
		}
	}

	res, err := run(ctx, kind, data, dir, cfg)
	if err != nil {
		cleanup()
		return Result{}, noop, err
	}
	cfg.Logger.Info("document translated",
		"file", name, "kind", kind, "lang", cfg.Target,
		"paragraphs", res.Paragraphs, "units", res.Units, "failed", res.Failed)
	return res, cleanup, nil
}

func run(ctx context.Context, kind Kind, data []byte, dir string, cfg Config) (Result, error) {
	var (
		paras []Paragraph
		base  *docx.Docx
		err   error
	)
	switch kind {
	case KindStructured:
		var src docxSource
		src, err = readDocx(data)
		paras, base = src.Paragraphs, src.doc
	case KindTextPDF:
		paras, err = extractPDFLines(data)
	case KindScannedPDF, KindImage:
		paras, err = recognise(ctx, kind, data, dir, cfg)
	}
	if err != nil {
		return Result{}, err
	}

	out, units, failed := translateParagraphs(ctx, cfg.Translator, paras, cfg.Target)
	// an interrupted run must not produce a half-translated document
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	path := filepath.Join(dir, uuid.NewString()+"-"+kind.DownloadName())
	if err := writeDocx(path, out, base); err != nil {
		return Result{}, err
	}
	return Result{
		Kind:         kind,
		Paragraphs:   len(out),
		Units:        units,
		Failed:       failed,
		OutputPath:   path,
		DownloadName: kind.DownloadName(),
		Preview:      preview(paras, out, cfg.PreviewLines),
	}, nil
}

func recognise(ctx context.Context, kind Kind, data []byte, dir string, cfg Config) ([]Paragraph, error) {
	client, err := ocr.New(cfg.OCRLanguage)
	if err != nil {
		return nil, fmt.Errorf("start OCR: %w", err)
	}
	defer client.Close()

	var images []image.Image
	if kind == KindImage {
		img, err := decodeImage(data)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	} else {
		if images, err = renderPages(ctx, data, dir, cfg.DPI, cfg.Logger); err != nil {
			return nil, err
		}
	}
	return ocrLines(ctx, client, images)
}

// translateParagraphs translates every run and rebuilds the paragraphs
// with formatting copied across. Unit and failure counts are returned.
func translateParagraphs(ctx context.Context, tr *translate.Translator, paras []Paragraph, target string) ([]Paragraph, int, int) {
	var texts []string
	for _, p := range paras {
		for _, r := range p.Runs {
			texts = append(texts, r.Text)
		}
	}
	results := tr.TranslateAll(ctx, texts, target)

	out := make([]Paragraph, len(paras))
	i := 0
	for pi, p := range paras {
		runs := make([]TextRun, len(p.Runs))
		for ri, r := range p.Runs {
			runs[ri] = TextRun{Text: results[i].Text, Format: r.Format}
			i++
		}
		out[pi] = Paragraph{Style: p.Style, Runs: runs}
	}
	return out, len(texts), translate.Failed(results)
}
