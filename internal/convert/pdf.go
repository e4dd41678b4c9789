package convert

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	rpdf "rsc.io/pdf"
)

// pageTexts returns the text of every page, one visual line per row. The
// parser panics on some malformed input, so panics are converted to errors.
func pageTexts(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("pdf parser panic: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.Join(textLines(p.Content().Text), "\n"))
	}
	return pages, nil
}

type textRow struct {
	y      float64
	size   float64
	glyphs []pdf.Text
}

// textLines groups positioned glyphs into rows by baseline, top to bottom,
// and joins each row left to right. A space is inserted where the gap
// between glyphs exceeds a fifth of the font size.
func textLines(glyphs []pdf.Text) []string {
	var rows []*textRow
	for _, g := range glyphs {
		if g.S == "\n" {
			continue
		}
		var row *textRow
		for _, r := range rows {
			if math.Abs(r.y-g.Y) <= math.Max(1, 0.5*math.Max(r.size, g.FontSize)) {
				row = r
				break
			}
		}
		if row == nil {
			row = &textRow{y: g.Y, size: g.FontSize}
			rows = append(rows, row)
		}
		row.glyphs = append(row.glyphs, g)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.glyphs, func(i, j int) bool { return r.glyphs[i].X < r.glyphs[j].X })
		var b strings.Builder
		for i, g := range r.glyphs {
			if i > 0 {
				prev := r.glyphs[i-1]
				gap := g.X - (prev.X + prev.W)
				if gap > 0.2*g.FontSize && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
					b.WriteByte(' ')
				}
			}
			b.WriteString(g.S)
		}
		if ln := strings.TrimSpace(b.String()); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// hasTextLayer reports whether any page yields non-whitespace text.
func hasTextLayer(data []byte) (bool, error) {
	pages, err := pageTexts(data)
	if err != nil {
		return false, err
	}
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return true, nil
		}
	}
	return false, nil
}

// extractPDFLines returns one paragraph per non-empty line, pages in order.
func extractPDFLines(data []byte) ([]Paragraph, error) {
	pages, err := pageTexts(data)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	var out []Paragraph
	for _, p := range pages {
		out = append(out, lineParagraphs(p)...)
	}
	return out, nil
}

// pageCount drives per-page rendering; zero means unknown.
func pageCount(data []byte) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	doc, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return doc.NumPage()
}
