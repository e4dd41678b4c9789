package convert

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// DocxContentType is the MIME type of the generated documents.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// docxSource is the extracted content of a .docx file.
type docxSource struct {
	Paragraphs []Paragraph
	// doc is the parsed package. Its non-body parts (styles, theme, font
	// table, content types) are carried into the translated output.
	doc *docx.Docx
}

// readDocx extracts body paragraphs and their direct runs. Tables,
// hyperlinks and field runs are skipped.
func readDocx(data []byte) (docxSource, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return docxSource{}, fmt.Errorf("open docx: %w", err)
	}
	// the root element is only named once word/document.xml was decoded
	if doc.Document.XMLName.Local == "" {
		return docxSource{}, errors.New("open docx: missing word/document.xml")
	}

	src := docxSource{doc: doc}
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var para Paragraph
		if p.Properties != nil && p.Properties.Style != nil {
			para.Style = p.Properties.Style.Val
		}
		for _, child := range p.Children {
			if r, ok := child.(*docx.Run); ok {
				para.Runs = append(para.Runs, TextRun{Text: runText(r), Format: runFormat(r.RunProperties)})
			}
		}
		src.Paragraphs = append(src.Paragraphs, para)
	}
	return src, nil
}

func runText(r *docx.Run) string {
	var b strings.Builder
	for _, c := range r.Children {
		switch x := c.(type) {
		case *docx.Text:
			b.WriteString(x.Text)
		case *docx.Tab:
			b.WriteByte('\t')
		case *docx.BarterRabbet:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func runFormat(p *docx.RunProperties) RunFormat {
	var f RunFormat
	if p == nil {
		return f
	}
	f.Bold = p.Bold != nil
	f.Italic = p.Italic != nil
	if p.Underline != nil {
		f.Underline = p.Underline.Val
		if f.Underline == "" {
			f.Underline = "single"
		}
	}
	if p.Size != nil {
		f.Size, _ = strconv.Atoi(p.Size.Val)
	}
	if p.Fonts != nil {
		for _, name := range []string{p.Fonts.ASCII, p.Fonts.HAnsi, p.Fonts.EastAsia} {
			if name != "" {
				f.Font = name
				break
			}
		}
	}
	return f
}

// writeDocx writes paragraphs as a .docx at path. base supplies every
// package part except the body; nil selects the library's default theme.
// Section properties of base are kept and its other body items dropped.
func writeDocx(path string, paragraphs []Paragraph, base *docx.Docx) (err error) {
	doc := base
	if doc == nil {
		doc = docx.New().WithDefaultTheme()
	}
	var sections []interface{}
	for _, item := range doc.Document.Body.Items {
		if s, ok := item.(*docx.SectPr); ok {
			sections = append(sections, s)
		}
	}
	doc.Document.Body.Items = make([]interface{}, 0, len(paragraphs)+len(sections))
	for _, p := range paragraphs {
		appendParagraph(doc, p)
	}
	doc.Document.Body.Items = append(doc.Document.Body.Items, sections...)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func appendParagraph(doc *docx.Docx, p Paragraph) {
	para := doc.AddParagraph()
	if p.Style != "" {
		para.Style(p.Style)
	}
	for _, r := range p.Runs {
		// AddText turns \n into w:br and \t into w:tab
		run := para.AddText(strings.ReplaceAll(r.Text, "\r", ""))
		for _, c := range run.Children {
			if t, ok := c.(*docx.Text); ok {
				t.XMLSpace = "preserve"
			}
		}
		applyFormat(run, r.Format)
	}
}

func applyFormat(run *docx.Run, f RunFormat) {
	if run.RunProperties == nil {
		run.RunProperties = &docx.RunProperties{}
	}
	if f.Font != "" {
		run.Font(f.Font, f.Font, f.Font, "")
	}
	if f.Bold {
		run.Bold()
	}
	if f.Italic {
		run.Italic()
	}
	if f.Size > 0 {
		run.Size(strconv.Itoa(f.Size))
	}
	if f.Underline != "" {
		run.Underline(f.Underline)
	}
}
