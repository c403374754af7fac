// Package render composites the visualizer and the game onto a raster surface.
// Drawing goes through Canvas so layers can be recorded in tests; pixel
// post-effects work on plain *image.RGBA buffers.
package render

import (
	"image"
	"image/color"
)

// Canvas is the vector drawing surface. Coordinates are in pixels with the
// origin at the top-left corner.
type Canvas interface {
	Size() (w, h int)
	FillRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, width float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// Surface is a Canvas that persists between frames and can be post-processed.
type Surface interface {
	Canvas
	// Snapshot copies the current canvas pixels into dst, which matches the canvas size.
	Snapshot(dst *image.RGBA)
	// Present shows img for this frame instead of the canvas. A nil img shows the canvas.
	Present(img *image.RGBA)
}
