package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"

	goqr "github.com/piglig/go-qr"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// QRCode renders content as a black-on-white image with scale pixels per
// module and a quiet zone of border modules.
func QRCode(content string, scale, border int) (image.Image, error) {
	qr, err := goqr.EncodeText(content, goqr.Low)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	if scale < 1 {
		scale = 1
	}

	size := qr.GetSize()
	side := (size + 2*border) * scale
	img := image.NewGray(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !qr.GetModule(x, y) {
				continue
			}
			px := (x + border) * scale
			py := (y + border) * scale
			draw.Draw(img, image.Rect(px, py, px+scale, py+scale), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
		}
	}
	return img, nil
}

// Fit scales img to fit inside maxW by maxH, keeping its aspect ratio.
// Images that already fit are returned unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	imgWidth := bounds.Dx()
	imgHeight := bounds.Dy()
	if imgWidth == 0 || imgHeight == 0 || (imgWidth <= maxW && imgHeight <= maxH) {
		return img
	}

	var newWidth, newHeight int
	imgAspect := float64(imgWidth) / float64(imgHeight)
	boxAspect := float64(maxW) / float64(maxH)

	if imgAspect > boxAspect {
		newWidth = maxW
		newHeight = int(float64(maxW) / imgAspect)
	} else {
		newHeight = maxH
		newWidth = int(float64(maxH) * imgAspect)
	}
	newWidth = max(newWidth, 1)
	newHeight = max(newHeight, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
