package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const wordBody = `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr>` +
	`<w:r><w:rPr><w:rFonts w:ascii="Arial"/><w:b/><w:sz w:val="32"/></w:rPr><w:t>Title</w:t></w:r></w:p>` +
	`<w:p><w:r><w:rPr><w:i/><w:u w:val="double"/></w:rPr>` +
	`<w:t xml:space="preserve">a </w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r>` +
	`<w:hyperlink><w:r><w:t>link</w:t></w:r></w:hyperlink>` +
	`<w:r><w:rPr><w:rFonts w:hAnsi="Mangal"/><w:u/></w:rPr><w:t>plain</w:t></w:r></w:p>` +
	`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
	`<w:p/>`

const quoteStyles = `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:style w:styleId="Quote"/></w:styles>`

// zipPart returns the named part of the package at path, or "" if absent.
func zipPart(t *testing.T, path, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}
	return ""
}

func TestReadDocx(t *testing.T) {
	src, err := readDocx(buildDocx(t, wordBody, quoteStyles))
	if err != nil {
		t.Fatalf("readDocx: %v", err)
	}
	want := []Paragraph{
		{Style: "Heading1", Runs: []TextRun{
			{Text: "Title", Format: RunFormat{Bold: true, Font: "Arial", Size: 32}},
		}},
		{Runs: []TextRun{
			{Text: "a \tb\nc", Format: RunFormat{Italic: true, Underline: "double"}},
			{Text: "plain", Format: RunFormat{Font: "Mangal", Underline: "single"}},
		}},
		{},
	}
	if !reflect.DeepEqual(src.Paragraphs, want) {
		t.Errorf("paragraphs mismatch\n got: %+v\nwant: %+v", src.Paragraphs, want)
	}
	if src.doc == nil {
		t.Error("parsed package not kept")
	}
}

func TestReadDocxErrors(t *testing.T) {
	if _, err := readDocx([]byte("not a zip")); err == nil {
		t.Error("expected error for non-zip input")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("word/other.xml"); err != nil {
		t.Fatal(err)
	}
	zw.Close()
	if _, err := readDocx(buf.Bytes()); err == nil || !strings.Contains(err.Error(), "document.xml") {
		t.Errorf("missing document.xml err = %v", err)
	}
}

func TestWriteDocxRoundTrip(t *testing.T) {
	paras := []Paragraph{
		{Style: "Title", Runs: []TextRun{
			{Text: "Bold & <tagged>", Format: RunFormat{Bold: true, Font: "Noto Sans", Size: 28}},
			{Text: " leading space", Format: RunFormat{Underline: "wave"}},
		}},
		{Runs: []TextRun{{Text: "line one\nline two\tcol"}}},
		{Style: "Quote"},
		{Runs: []TextRun{{Text: "नमस्ते दुनिया", Format: RunFormat{Italic: true}}}},
	}
	src, err := readDocx(buildDocx(t, `<w:p><w:r><w:t>dropped</w:t></w:r></w:p>`, quoteStyles))
	if err != nil {
		t.Fatalf("readDocx: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.docx")
	if err := writeDocx(path, paras, src.doc); err != nil {
		t.Fatalf("writeDocx: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := readDocx(data)
	if err != nil {
		t.Fatalf("readDocx: %v", err)
	}
	if !reflect.DeepEqual(got.Paragraphs, paras) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got.Paragraphs, paras)
	}
	if styles := zipPart(t, path, "word/styles.xml"); styles != quoteStyles {
		t.Errorf("styles not carried over: %s", styles)
	}
	if doc := zipPart(t, path, "word/document.xml"); !strings.Contains(doc, "sectPr") {
		t.Error("section properties dropped")
	}
}

func TestWriteDocxDefaultStyles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	if err := writeDocx(path, lineParagraphs("one\ntwo"), nil); err != nil {
		t.Fatalf("writeDocx: %v", err)
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels", "word/styles.xml"} {
		if zipPart(t, path, want) == "" {
			t.Errorf("missing part %s", want)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := readDocx(data)
	if err != nil {
		t.Fatalf("readDocx: %v", err)
	}
	if len(got.Paragraphs) != 2 || got.Paragraphs[0].Text() != "one" || got.Paragraphs[1].Text() != "two" {
		t.Errorf("paragraphs = %+v", got.Paragraphs)
	}
}
