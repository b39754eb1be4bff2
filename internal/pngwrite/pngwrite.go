// Package pngwrite adapts decoded RGBA rectangles to PNG files, following
// the teacher's gs2png/bmp2gs pattern of building an image.NRGBA and handing
// it to bild/imgio rather than driving image/png directly.
package pngwrite

import (
	"image"
	"os"

	"github.com/anthonynsimon/bild/imgio"
)

// Write encodes a tightly-packed RGBA pixel buffer (width*height*4 bytes,
// row-major) as a PNG at filename.
func Write(filename string, width, height uint16, pixels []byte) error {
	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	copy(img.Pix, pixels)
	return imgio.Save(filename, img, imgio.PNGEncoder())
}

// WriteRaw writes data verbatim, for entries that decoded successfully but
// don't carry a recognized pixel header.
func WriteRaw(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}
