package texture

import "image"

// FlipY mirrors img vertically in place, moving row 0 to the bottom.
func FlipY(img *image.RGBA) {
	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)
	for y := range h / 2 {
		top := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		bot := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowLen]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// ntscLUT maps [0,255] linearly onto the broadcast-safe range [16,235].
var ntscLUT = func() (lut [256]uint8) {
	const lo, hi = 16 - 0.499, 235 + 0.499
	for i := range lut {
		lut[i] = uint8((hi-lo)*float32(i)/255 + lo + 0.5)
	}
	return lut
}()

// ClampNTSC rescales the colour channels of img into [16,235] in place.
// Alpha is left untouched.
func ClampNTSC(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = ntscLUT[img.Pix[i]]
		img.Pix[i+1] = ntscLUT[img.Pix[i+1]]
		img.Pix[i+2] = ntscLUT[img.Pix[i+2]]
	}
}

// MipChain returns img followed by successively halved levels down to 1x1.
// Each texel of a level is the average of the 2x2 (or 2x1, 1x2) block above
// it; odd edges repeat the last row or column.
func MipChain(img *image.RGBA) []*image.RGBA {
	levels := []*image.RGBA{img}
	cur := img
	for cur.Rect.Dx() > 1 || cur.Rect.Dy() > 1 {
		cur = halve(cur)
		levels = append(levels, cur)
	}
	return levels
}

func halve(src *image.RGBA) *image.RGBA {
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	dw, dh := max(sw/2, 1), max(sh/2, 1)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))

	for y := range dh {
		y0 := min(y*2, sh-1)
		y1 := min(y*2+1, sh-1)
		for x := range dw {
			x0 := min(x*2, sw-1)
			x1 := min(x*2+1, sw-1)
			d := dst.PixOffset(x, y)
			for c := range 4 {
				sum := int(src.Pix[src.PixOffset(x0, y0)+c]) +
					int(src.Pix[src.PixOffset(x1, y0)+c]) +
					int(src.Pix[src.PixOffset(x0, y1)+c]) +
					int(src.Pix[src.PixOffset(x1, y1)+c])
				dst.Pix[d+c] = uint8((sum + 2) / 4)
			}
		}
	}
	return dst
}
