package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the persistent ebiten canvas the renderer paints on. The canvas
// keeps last frame's pixels so the background fade leaves trails. Processed
// frames go to a separate output image and never feed back into the canvas.
type Surface struct {
	canvas *ebiten.Image
	output *ebiten.Image
	shown  *ebiten.Image
	w, h   int
}

func NewSurface(w, h int) *Surface {
	s := &Surface{
		canvas: ebiten.NewImage(w, h),
		output: ebiten.NewImage(w, h),
		w:      w,
		h:      h,
	}
	s.canvas.Fill(color.Black)
	s.shown = s.canvas
	return s
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.canvas, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(s.canvas, float32(cx), float32(cy), float32(r), c, true)
}

func (s *Surface) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	vector.StrokeCircle(s.canvas, float32(cx), float32(cy), float32(r), float32(width), c, true)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(s.canvas, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// Snapshot reads the canvas back from the GPU. dst must be w*h RGBA.
func (s *Surface) Snapshot(dst *image.RGBA) {
	s.canvas.ReadPixels(dst.Pix)
}

// Present selects what DrawTo shows: the processed img, or the canvas when img is nil.
func (s *Surface) Present(img *image.RGBA) {
	if img == nil {
		s.shown = s.canvas
		return
	}
	s.output.WritePixels(img.Pix)
	s.shown = s.output
}

func (s *Surface) DrawTo(screen *ebiten.Image) {
	screen.DrawImage(s.shown, nil)
}
