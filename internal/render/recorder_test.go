package render

import (
	"image"
	"image/color"
	"image/draw"
)

type op struct {
	kind  string
	x, y  float64
	r     float64
	color color.Color
}

// recorder is an in-memory Surface that records drawing calls.
type recorder struct {
	w, h      int
	ops       []op
	pixels    *image.RGBA
	presented *image.RGBA
	snapshots int
	presents  int
}

func newRecorder(w, h int) *recorder {
	return &recorder{w: w, h: h, pixels: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, color: c})
}

func (r *recorder) FillCircle(cx, cy, rad float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "circle", x: cx, y: cy, r: rad, color: c})
}

func (r *recorder) StrokeCircle(cx, cy, rad, width float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "ring", x: cx, y: cy, r: rad, color: c})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "line", x: x1, y: y1, r: width, color: c})
}

func (r *recorder) Snapshot(dst *image.RGBA) {
	r.snapshots++
	draw.Draw(dst, dst.Bounds(), r.pixels, image.Point{}, draw.Src)
}

func (r *recorder) Present(img *image.RGBA) {
	r.presents++
	r.presented = img
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) reset() { r.ops = r.ops[:0] }
