// Package geometry maps spectrum samples to visualizer shapes. Every function is
// pure and safe for concurrent use.
package geometry

import "math"

const (
	// SampleMax is the largest byte sample value.
	SampleMax = 255
	// WaveformCenter is the byte value of a silent waveform sample.
	WaveformCenter = 128

	tau = 2 * math.Pi
)

// BarParams describes the radial bar layout for a canvas.
type BarParams struct {
	HalfHeight   float64
	RadiusOffset float64
	MinHeight    float64
	MaxHeight    float64
	Spacing      float64
	Exponent     float64
}

// Bars is the per-frame constant part of the bar layout.
type Bars struct {
	Count         int
	InnerRadius   float64
	OuterRadius   float64
	Circumference float64
	BarWidth      float64
	AngleStep     float64
}

// BarGeometry computes the ring the bars are laid on. A non-positive sample
// length yields a layout with zero bars.
func BarGeometry(halfHeight float64, sampleLength int, radiusOffset, minHeight, maxHeight, spacing float64) Bars {
	inner := halfHeight - radiusOffset
	b := Bars{
		InnerRadius:   inner,
		OuterRadius:   inner + maxHeight,
		Circumference: tau * inner,
	}
	if sampleLength <= 0 {
		return b
	}
	n := float64(sampleLength)
	b.Count = sampleLength
	b.BarWidth = (b.Circumference - n*spacing) / n
	b.AngleStep = tau / n
	return b
}

// Geometry is BarGeometry with the params' own values.
func (p BarParams) Geometry(sampleLength int) Bars {
	return BarGeometry(p.HalfHeight, sampleLength, p.RadiusOffset, p.MinHeight, p.MaxHeight, p.Spacing)
}

// BarHeight maps a sample to (max-min)*(sample/255)^exponent + min.
func BarHeight(sample byte, minHeight, maxHeight, exponent float64) float64 {
	return (maxHeight-minHeight)*math.Pow(float64(sample)/SampleMax, exponent) + minHeight
}

// Height is BarHeight with the params' own values.
func (p BarParams) Height(sample byte) float64 {
	return BarHeight(sample, p.MinHeight, p.MaxHeight, p.Exponent)
}

// RingPoint returns one vertex of the waveform ring:
// radius = base - amplitude*(sample/128) at the given angle.
func RingPoint(sample byte, baseRadius, amplitude, angle float64) Vec {
	r := baseRadius - amplitude*(float64(sample)/WaveformCenter)
	return Polar(r, angle)
}

// Ring returns the vertices of the closed waveform polyline, one per sample,
// evenly spread and rotated by rotation. The closing edge joins the last
// vertex to vertex 0; see Segment.
func Ring(samples []byte, baseRadius, amplitude, rotation float64) []Vec {
	if len(samples) == 0 {
		return nil
	}
	step := tau / float64(len(samples))
	out := make([]Vec, len(samples))
	for i, s := range samples {
		out[i] = RingPoint(s, baseRadius, amplitude, -math.Pi/2+float64(i)*step+rotation)
	}
	return out
}

// Segment returns edge i of a closed polyline: vertex i to its wrapped successor.
func Segment(vertices []Vec, i int) (Vec, Vec) {
	n := len(vertices)
	return vertices[i%n], vertices[(i+1)%n]
}

// BarAngle is the polar angle of bar index among total/stride bars.
func BarAngle(barIndex, stride, totalSamples int, rotation float64) float64 {
	angle := -math.Pi/2 + rotation
	if stride < 1 {
		stride = 1
	}
	if n := totalSamples / stride; n > 0 {
		angle += float64(barIndex) * (tau / float64(n))
	}
	return angle
}

// TransientSpawnPoint is the tip of bar barIndex: the point at
// outerRadius - barHeight(sample) along the bar's angle. Bars are drawn from the
// same point, so projectiles appear to leave the bar tip.
func TransientSpawnPoint(sample byte, barIndex, stride, totalSamples int, p BarParams, rotation float64) Vec {
	b := p.Geometry(totalSamples)
	angle := BarAngle(barIndex, stride, totalSamples, rotation)
	return Polar(b.OuterRadius-p.Height(sample), angle)
}

// WrapAngle folds an angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, tau)
	if a < 0 {
		a += tau
	}
	if a >= tau {
		a = 0
	}
	return a
}

// Rotate advances an angle by velocity*elapsed and wraps it.
func Rotate(angle, velocity, elapsed float64) float64 {
	return WrapAngle(angle + velocity*elapsed)
}
