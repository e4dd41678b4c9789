package convert

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/thywilljoshua/doc-translate/internal/ocr"
)

// ocrLines recognises each raster and returns one paragraph per non-empty
// line, images in order.
func ocrLines(ctx context.Context, client *ocr.Client, images []image.Image) ([]Paragraph, error) {
	var out []Paragraph
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		png, err := ocr.EncodePNG(ocr.Preprocess(img))
		if err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		text, err := client.RecognizeImage(png)
		if err != nil {
			return nil, fmt.Errorf("ocr page %d: %w", i+1, err)
		}
		out = append(out, lineParagraphs(text)...)
	}
	return out, nil
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
