package render

import (
	"image"
	"math/rand/v2"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/geometry"
	"github.com/iburimskiy/audio-dodge/internal/sim"
)

// Frame is everything one frame draws. It is built by the loop controller and
// only read here.
type Frame struct {
	Frequency   []byte
	Waveform    []byte
	Rotation    float64
	Time        float64
	Params      config.DrawParams
	Player      sim.Body
	Boundary    float64
	Projectiles []sim.Body
}

// Renderer draws the layers in a fixed order: Background, Visualizer,
// Objects, PostEffects. It keeps only scratch buffers between frames.
type Renderer struct {
	bars   geometry.BarParams
	rings  config.RingsConfig
	static StaticParams
	rng    *rand.Rand
	buf    *image.RGBA
}

func New(cfg config.Config, bars geometry.BarParams, rng *rand.Rand) *Renderer {
	return &Renderer{
		bars:  bars,
		rings: cfg.Rings,
		static: StaticParams{
			MinRun:   config.StaticMinRun,
			MaxRun:   config.StaticMaxRun,
			MaxShift: config.StaticMaxShift,
		},
		rng: rng,
	}
}

func centre(c Canvas) (float64, float64) {
	w, h := c.Size()
	return float64(w) / 2, float64(h) / 2
}

// Draw runs every layer. The loop controller calls the layers one by one so the
// simulation can step between the visualizer and the objects.
func (r *Renderer) Draw(s Surface, f Frame) {
	r.Background(s, f)
	r.Visualizer(s, f)
	r.Objects(s, f)
	r.PostEffects(s, f.Params)
}

// Background fades the previous frame, then optionally lays the gradient, then
// strokes the arena boundary when the game is visible.
func (r *Renderer) Background(c Canvas, f Frame) {
	w, h := c.Size()
	c.FillRect(0, 0, float64(w), float64(h), fadeColor)

	if f.Params.Gradient {
		for y := 0; y < h; y++ {
			c.FillRect(0, float64(y), float64(w), 1, gradientAt(float64(y)/float64(h)))
		}
	}

	if f.Params.Game && f.Boundary > 0 {
		cx, cy := centre(c)
		c.StrokeCircle(cx, cy, f.Boundary, 2, boundaryColor)
	}
}

// Visualizer draws bars, the waveform ring and the pulse circles, each on its
// own toggle. It draws nothing for an empty frequency frame.
func (r *Renderer) Visualizer(c Canvas, f Frame) {
	if len(f.Frequency) == 0 {
		return
	}
	if f.Params.Bars {
		r.drawBars(c, f)
	}
	if f.Params.OuterRing && len(f.Waveform) > 0 {
		r.drawRing(c, f)
	}
	if f.Params.Circles {
		r.drawCircles(c, f)
	}
}

func (r *Renderer) drawBars(c Canvas, f Frame) {
	cx, cy := centre(c)
	n := len(f.Frequency)
	g := r.bars.Geometry(n)
	width := g.BarWidth
	if width < 1 {
		width = 1
	}

	for i, s := range f.Frequency {
		angle := geometry.BarAngle(i, 1, n, f.Rotation)
		outer := geometry.Polar(g.OuterRadius, angle)
		tip := geometry.TransientSpawnPoint(s, i, 1, n, r.bars, f.Rotation)
		c.StrokeLine(cx+outer.X, cy+outer.Y, cx+tip.X, cy+tip.Y, width+1, barEdgeColor)
		c.StrokeLine(cx+outer.X, cy+outer.Y, cx+tip.X, cy+tip.Y, width, barColor)
	}
}

func (r *Renderer) drawRing(c Canvas, f Frame) {
	cx, cy := centre(c)
	verts := geometry.Ring(f.Waveform, r.rings.OuterBaseRadius, r.rings.OuterAmplitude, f.Rotation)
	for i := range verts {
		a, b := geometry.Segment(verts, i)
		col := hueColor(f.Time*40+float64(i)*360/float64(len(verts)), 0.8, 0.9, 0.9)
		c.StrokeLine(cx+a.X, cy+a.Y, cx+b.X, cy+b.Y, r.rings.LineWidth, col)
	}
}

// drawCircles draws RingCount pulses sampled evenly across the spectrum, each
// as three concentric discs that fade as the sample grows.
func (r *Renderer) drawCircles(c Canvas, f Frame) {
	count := f.Params.RingCount
	if count <= 0 {
		return
	}
	cx, cy := centre(c)
	n := len(f.Frequency)
	const layerAlpha = 0.5

	for i := 0; i < count; i++ {
		idx := i * n / count
		if idx >= n {
			idx = n - 1
		}
		pct := float64(f.Frequency[idx]) / geometry.SampleMax
		radius := pct * f.Params.RingMaxRadius
		if radius <= 0 {
			continue
		}
		c.FillCircle(cx, cy, radius, tint(255, 111, 111, (0.34-pct/3)*layerAlpha))
		c.FillCircle(cx, cy, radius*1.5, tint(0, 0, 255, (0.1-pct/10)*layerAlpha))
		c.FillCircle(cx, cy, radius*0.5, tint(200, 200, 0, (0.5-pct/5)*layerAlpha))
	}
}

// Objects draws projectiles, then the player on top. Nothing is drawn when the
// game is hidden.
func (r *Renderer) Objects(c Canvas, f Frame) {
	if !f.Params.Game {
		return
	}
	cx, cy := centre(c)
	for _, p := range f.Projectiles {
		c.FillCircle(cx+p.Pos.X+p.Shadow.X, cy+p.Pos.Y+p.Shadow.Y, p.Radius, shadowColor)
		c.FillCircle(cx+p.Pos.X, cy+p.Pos.Y, p.Radius, projectileColors[p.Bar&1])
	}

	pl := f.Player
	c.FillCircle(cx+pl.Pos.X+pl.Shadow.X, cy+pl.Pos.Y+pl.Shadow.Y, pl.Radius, shadowColor)
	c.FillCircle(cx+pl.Pos.X, cy+pl.Pos.Y, pl.Radius, playerColor)
	c.StrokeCircle(cx+pl.Pos.X, cy+pl.Pos.Y, pl.Radius, 1.5, playerEdge)
}

// PostEffects runs the enabled pixel effects in order noise, invert, static,
// emboss on a copy of the canvas and presents the result. The canvas itself is
// left untouched so the fade trails never accumulate effects.
func (r *Renderer) PostEffects(s Surface, p config.DrawParams) {
	if !p.AnyEffect() {
		s.Present(nil)
		return
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		s.Present(nil)
		return
	}
	if r.buf == nil || r.buf.Bounds().Dx() != w || r.buf.Bounds().Dy() != h {
		r.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	s.Snapshot(r.buf)

	if p.Noise {
		Noise(r.buf, r.rng, config.NoiseProbability, config.NoiseValue)
	}
	if p.Invert {
		Invert(r.buf)
	}
	if p.Static {
		Static(r.buf, r.rng, r.static)
	}
	if p.Emboss {
		Emboss(r.buf, config.EmbossBias)
	}
	s.Present(r.buf)
}
