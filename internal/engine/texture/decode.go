// Package texture decodes images into RGBA pixel data ready for upload:
// flipped for a bottom-left origin, clamped to NTSC-safe levels and
// expanded into a mip chain.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder
)

// ErrDecode is returned when an image cannot be decoded.
var ErrDecode = errors.New("cannot decode image")

// Decode decodes PNG, JPEG, BMP or TGA data. TGA has no magic number, so it
// is chosen by the file extension of name.
func Decode(name string, data []byte) (*image.RGBA, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrDecode, name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecode, name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}
