package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	fadeColor      = color.NRGBA{A: 26}
	gradientTop    = colorful.Color{R: 1, G: 0, B: 1}
	gradientBottom = colorful.Color{R: 0, G: 0, B: 1}
	boundaryColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 90}
	barColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 128}
	barEdgeColor   = color.NRGBA{A: 128}
	shadowColor    = color.NRGBA{A: 100}
	playerColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	playerEdge     = color.NRGBA{R: 20, G: 20, B: 30, A: 255}

	// Projectiles alternate by bar parity.
	projectileColors = [2]color.NRGBA{
		{R: 251, G: 109, B: 22, A: 255},
		{R: 62, G: 10, B: 94, A: 255},
	}
)

const gradientAlpha = 0.3

// hueColor converts HSV (hue in degrees, any range) to an opaque-or-alpha NRGBA.
func hueColor(h, s, v, alpha float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

// gradientAt is the background gradient colour at t in [0,1] from top to bottom.
func gradientAt(t float64) color.NRGBA {
	r, g, b := gradientTop.BlendRgb(gradientBottom, clamp01(t)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(gradientAlpha)}
}

func tint(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
