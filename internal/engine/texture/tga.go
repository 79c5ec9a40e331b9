package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA errors.
var (
	ErrTGATruncated   = errors.New("TGA data truncated")
	ErrTGAUnsupported = errors.New("unsupported TGA variant")
)

// TGA image types.
const (
	tgaTypeTrueColor    = 2
	tgaTypeTrueColorRLE = 10
	tgaHeaderSize       = 18
)

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color
// TGA with 24 or 32 bits per pixel. The result is top-down regardless of
// the file's origin bit.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, ErrTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topDown := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped: %w", ErrTGAUnsupported)
	}
	if imageType != tgaTypeTrueColor && imageType != tgaTypeTrueColorRLE {
		return nil, fmt.Errorf("type %d: %w", imageType, ErrTGAUnsupported)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%d bpp: %w", bpp, ErrTGAUnsupported)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	r := &tgaReader{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		src:     data[offset:],
		stride:  bpp / 8,
		width:   width,
		height:  height,
		topDown: topDown,
	}

	var err error
	if imageType == tgaTypeTrueColor {
		err = r.readRaw(width * height)
	} else {
		err = r.readRLE()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

type tgaReader struct {
	img     *image.RGBA
	src     []byte
	pos     int
	stride  int
	width   int
	height  int
	topDown bool
	pixel   int
}

// next reads one BGR(A) pixel.
func (r *tgaReader) next() (color.RGBA, error) {
	if r.pos+r.stride > len(r.src) {
		return color.RGBA{}, ErrTGATruncated
	}
	p := r.src[r.pos : r.pos+r.stride]
	r.pos += r.stride

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.stride == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put writes c at the current pixel and advances.
func (r *tgaReader) put(c color.RGBA) {
	x := r.pixel % r.width
	y := r.pixel / r.width
	if !r.topDown {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}

func (r *tgaReader) readRaw(n int) error {
	for range n {
		c, err := r.next()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) readRLE() error {
	total := r.width * r.height
	for r.pixel < total {
		if r.pos >= len(r.src) {
			return ErrTGATruncated
		}
		packet := r.src[r.pos]
		r.pos++
		count := min(int(packet&0x7F)+1, total-r.pixel)

		if packet&0x80 == 0 {
			if err := r.readRaw(count); err != nil {
				return err
			}
			continue
		}

		c, err := r.next()
		if err != nil {
			return err
		}
		for range count {
			r.put(c)
		}
	}
	return nil
}
