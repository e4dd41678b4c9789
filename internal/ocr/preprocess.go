package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Preprocess converts img to grayscale and binarises it with an Otsu
// threshold. Dark pixels become black, everything else white.
func Preprocess(img image.Image) *image.Gray {
	gray := Grayscale(img)
	t := OtsuThreshold(gray)
	for i, v := range gray.Pix {
		if v > t {
			gray.Pix[i] = 0xff
		} else {
			gray.Pix[i] = 0
		}
	}
	return gray
}

// Grayscale returns a copy of img in 8-bit luminance, origin at (0,0).
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.SetGray(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
		}
	}
	return gray
}

// OtsuThreshold picks the level that maximises between-class variance of
// the histogram. Pixels <= the returned level form the foreground class.
func OtsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	for _, v := range gray.Pix {
		hist[v]++
	}
	total := len(gray.Pix)
	if total == 0 {
		return 127
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i * n)
	}

	var (
		sumB   float64
		wB     int
		best   float64
		thresh uint8
	)
	for i := 0; i < 256; i++ {
		wB += hist[i]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(i * hist[i])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			thresh = uint8(i)
		}
	}
	return thresh
}

// EncodePNG serialises a preprocessed page for the OCR engine.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
