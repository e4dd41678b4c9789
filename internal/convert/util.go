package convert

import "strings"

// nonEmptyLines splits text on line breaks and drops lines that are blank
// after trimming. Kept lines are trimmed.
func nonEmptyLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// lineParagraphs wraps each non-empty line as an unformatted paragraph.
func lineParagraphs(text string) []Paragraph {
	lines := nonEmptyLines(text)
	out := make([]Paragraph, 0, len(lines))
	for _, ln := range lines {
		out = append(out, Paragraph{Runs: []TextRun{{Text: ln}}})
	}
	return out
}

// preview pairs the first n paragraphs with non-empty original text.
func preview(orig, translated []Paragraph, n int) []PreviewLine {
	var out []PreviewLine
	for i := 0; i < len(orig) && len(out) < n; i++ {
		o := strings.TrimSpace(orig[i].Text())
		if o == "" {
			continue
		}
		out = append(out, PreviewLine{
			Original:   o,
			Translated: strings.TrimSpace(translated[i].Text()),
		})
	}
	return out
}
