package convert

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want Kind
	}{
		{"docx", "report.docx", nil, KindStructured},
		{"docx upper case", "REPORT.DOCX", nil, KindStructured},
		{"png", "scan.png", nil, KindImage},
		{"jpg", "scan.jpg", nil, KindImage},
		{"jpeg mixed case", "scan.JpEg", nil, KindImage},
		{"text pdf", "a.pdf", buildPDF([]string{"Hello"}), KindTextPDF},
		{"text on later page", "a.pdf", buildPDF(nil, []string{"Later"}), KindTextPDF},
		{"no text on any page", "a.pdf", buildPDF(nil, nil), KindScannedPDF},
		{"unreadable pdf", "a.pdf", []byte("definitely not a pdf"), KindScannedPDF},
		{"empty pdf", "a.PDF", nil, KindScannedPDF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Route(context.Background(), tt.file, tt.data)
			if err != nil {
				t.Fatalf("Route: %v", err)
			}
			if got != tt.want {
				t.Errorf("Route(%s) = %s, want %s", tt.file, got, tt.want)
			}
		})
	}
}

func TestRouteUnsupported(t *testing.T) {
	for _, name := range []string{"notes.txt", "archive.zip", "noext", "image.gif", "doc.doc"} {
		if _, err := Route(context.Background(), name, []byte("x")); !errors.Is(err, ErrUnsupported) {
			t.Errorf("Route(%s) err = %v, want ErrUnsupported", name, err)
		}
	}
}

func TestKindDownloadName(t *testing.T) {
	tests := map[Kind]string{
		KindStructured: "translated_preserved.docx",
		KindTextPDF:    "translated_output.docx",
		KindScannedPDF: "translated_output.docx",
		KindImage:      "translated_image_output.docx",
	}
	for k, want := range tests {
		if got := k.DownloadName(); got != want {
			t.Errorf("%s.DownloadName() = %s, want %s", k, got, want)
		}
	}
}

func TestExtractPDFLines(t *testing.T) {
	data := buildPDF([]string{"Hello", "World"}, nil, []string{"Third line"})
	paras, err := extractPDFLines(data)
	if err != nil {
		t.Fatalf("extractPDFLines: %v", err)
	}
	want := []string{"Hello", "World", "Third line"}
	if len(paras) != len(want) {
		t.Fatalf("got %d paragraphs %v, want %d", len(paras), paras, len(want))
	}
	for i, p := range paras {
		if p.Text() != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, p.Text(), want[i])
		}
		if p.Style != "" || len(p.Runs) != 1 || p.Runs[0].Format != (RunFormat{}) {
			t.Errorf("paragraph %d carries formatting: %+v", i, p)
		}
	}
}

func TestExtractPDFLinesSingleTextObject(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   []string
	}{
		{
			"td moves",
			"BT /F1 12 Tf 72 720 Td (Hello) Tj 0 -20 Td (World) Tj 0 -20 Td (Third line) Tj ET",
			[]string{"Hello", "World", "Third line"},
		},
		{
			"leading and quote operator",
			"BT /F1 12 Tf 14 TL 72 720 Td (First) Tj (Second) ' T* (Third) Tj ET",
			[]string{"First", "Second", "Third"},
		},
		{
			"kerned words on one line",
			"BT /F1 12 Tf 72 720 Td [(Hello) -600 (there)] TJ ET",
			[]string{"Hello there"},
		},
		{
			"drawn bottom up",
			"BT /F1 12 Tf 72 600 Td (Lower) Tj ET BT /F1 12 Tf 72 700 Td (Upper) Tj ET",
			[]string{"Upper", "Lower"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paras, err := extractPDFLines(buildPDFStreams(tt.stream))
			if err != nil {
				t.Fatalf("extractPDFLines: %v", err)
			}
			got := make([]string, len(paras))
			for i, p := range paras {
				got[i] = p.Text()
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	if n := pageCount(buildPDF(nil, nil, []string{"x"})); n != 3 {
		t.Errorf("pageCount = %d, want 3", n)
	}
	if n := pageCount([]byte("garbage")); n != 0 {
		t.Errorf("pageCount(garbage) = %d, want 0", n)
	}
}

func TestNonEmptyLines(t *testing.T) {
	got := nonEmptyLines("  first \r\n\n\t\nsecond\rthird  \n   ")
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
