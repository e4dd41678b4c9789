package convert

import (
	"fmt"
	"log/slog"

	"github.com/thywilljoshua/doc-translate/internal/translate"
)

// Kind is the processing path chosen for an input file.
type Kind int

const (
	KindStructured Kind = iota + 1
	KindTextPDF
	KindScannedPDF
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindTextPDF:
		return "text-pdf"
	case KindScannedPDF:
		return "scanned-pdf"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	for _, c := range []Kind{KindStructured, KindTextPDF, KindScannedPDF, KindImage} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", b)
}

// DownloadName is the fixed user-facing file name for the path's output.
func (k Kind) DownloadName() string {
	switch k {
	case KindStructured:
		return "translated_preserved.docx"
	case KindImage:
		return "translated_image_output.docx"
	default:
		return "translated_output.docx"
	}
}

// RunFormat is the character formatting carried by a run. Zero values mean
// unset, so the paragraph style applies.
type RunFormat struct {
	Bold      bool
	Italic    bool
	Underline string // w:u value, e.g. "single"
	Font      string
	Size      int // half-points
}

// TextRun is a span of text sharing one RunFormat.
type TextRun struct {
	Text   string
	Format RunFormat
}

// Paragraph is one output paragraph. Style is the w:pStyle id, empty for
// the default paragraph style.
type Paragraph struct {
	Style string
	Runs  []TextRun
}

// Text joins the paragraph's run texts.
func (p Paragraph) Text() string {
	var n int
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range p.Runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

// Config controls one Run.
type Config struct {
	// WorkDir is the parent of the per-request scratch directory.
	// Empty means os.TempDir().
	WorkDir string
	// Target is the language code to translate into.
	Target     string
	Translator *translate.Translator
	// OCRLanguage is the Tesseract language (default "eng").
	OCRLanguage string
	// DPI for rendering scanned PDF pages (default 300).
	DPI int
	// PreviewLines bounds Result.Preview (default 3).
	PreviewLines int
	Logger       *slog.Logger
}

func (c *Config) defaults() {
	if c.OCRLanguage == "" {
		c.OCRLanguage = "eng"
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	if c.PreviewLines <= 0 {
		c.PreviewLines = 3
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// PreviewLine pairs an original paragraph with its translation.
type PreviewLine struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// Result summarises a completed run.
type Result struct {
	Kind         Kind          `json:"kind"`
	Paragraphs   int           `json:"paragraphs"`
	Units        int           `json:"units"`
	Failed       int           `json:"failed"`
	OutputPath   string        `json:"output_path"`
	DownloadName string        `json:"download_name"`
	Preview      []PreviewLine `json:"preview"`
}
