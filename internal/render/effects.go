package render

import (
	"image"
	"math/rand/v2"
)

// Noise forces the RGB of each pixel to value with probability prob. Alpha is kept.
func Noise(img *image.RGBA, rng *rand.Rand, prob float64, value uint8) {
	forEachRow(img, func(row []uint8) {
		for i := 0; i+3 < len(row); i += 4 {
			if rng.Float64() < prob {
				row[i], row[i+1], row[i+2] = value, value, value
			}
		}
	})
}

// Invert replaces RGB with 255-RGB. Alpha is kept.
func Invert(img *image.RGBA) {
	forEachRow(img, func(row []uint8) {
		for i := 0; i+3 < len(row); i += 4 {
			row[i] = 255 - row[i]
			row[i+1] = 255 - row[i+1]
			row[i+2] = 255 - row[i+2]
		}
	})
}

// StaticParams shapes the scanline displacement.
type StaticParams struct {
	MinRun   int
	MaxRun   int
	MaxShift int
}

// Static shifts groups of consecutive rows horizontally, wrapping at the row ends.
// Each group spans MinRun..MaxRun rows and shares one random offset in
// [-MaxShift, MaxShift]; a new length and offset are drawn when a group ends.
func Static(img *image.RGBA, rng *rand.Rand, p StaticParams) {
	b := img.Bounds()
	w := b.Dx()
	if w == 0 || p.MaxShift <= 0 {
		return
	}
	minRun := max(p.MinRun, 1)
	maxRun := max(p.MaxRun, minRun)

	tmp := make([]uint8, w*4)
	remaining, shift := 0, 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if remaining == 0 {
			remaining = minRun + rng.IntN(maxRun-minRun+1)
			shift = rng.IntN(2*p.MaxShift+1) - p.MaxShift
		}
		remaining--

		s := ((shift % w) + w) % w
		if s == 0 {
			continue
		}
		off := img.PixOffset(b.Min.X, y)
		row := img.Pix[off : off+w*4]
		copy(tmp, row)
		// Pixel x moves to x+s.
		copy(row[s*4:], tmp[:(w-s)*4])
		copy(row[:s*4], tmp[(w-s)*4:])
	}
}

// Emboss applies out = bias + 2*centre - right - below to each colour channel.
// Pixels are processed forward in place, so both neighbours are still original
// values when read. On the last column and row the missing neighbour is the
// centre pixel itself. Results clamp to [0,255]; alpha is kept.
func Emboss(img *image.RGBA, bias int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			right, below := i, i
			if x+1 < b.Max.X {
				right = i + 4
			}
			if y+1 < b.Max.Y {
				below = i + img.Stride
			}
			for c := 0; c < 3; c++ {
				v := bias + 2*int(img.Pix[i+c]) - int(img.Pix[right+c]) - int(img.Pix[below+c])
				img.Pix[i+c] = clampByte(v)
			}
		}
	}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func forEachRow(img *image.RGBA, fn func(row []uint8)) {
	b := img.Bounds()
	w := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		fn(img.Pix[off : off+w])
	}
}
