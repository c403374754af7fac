package audio

import (
	"math"
	"math/rand/v2"

	"github.com/faiface/beep"

	"github.com/iburimskiy/audio-dodge/internal/config"
)

// CurveSize is the number of points in a distortion curve.
const CurveSize = 256

// MakeDistortionCurve builds a waveshaper curve over x in [-1,1). Amount is in
// [0,100]. DistortionNone returns nil, which the shaper treats as pass-through.
func MakeDistortionCurve(kind config.Distortion, amount float64, rng *rand.Rand) []float64 {
	if kind == config.DistortionNone || kind == "" {
		return nil
	}
	curve := make([]float64, CurveSize)
	for i := range curve {
		x := float64(i)*2/CurveSize - 1
		switch kind {
		case config.DistortionStatic:
			curve[i] = x * (rng.Float64()*amount/100 + 1)
		case config.DistortionBuzz:
			curve[i] = x + math.Sin(x*x)*amount/50
		case config.DistortionBoosted:
			curve[i] = x * math.Pi * 3 / (math.Pi + 20*math.Abs(x)) * amount / 100
		}
	}
	return curve
}

// Shaper applies a waveshaper curve to both channels, interpolating linearly
// between curve points. Curve is swapped under speaker.Lock.
type Shaper struct {
	Streamer beep.Streamer
	Curve    []float64
}

func (s *Shaper) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.Streamer.Stream(samples)
	if len(s.Curve) == 0 {
		return n, ok
	}
	for i := range samples[:n] {
		samples[i][0] = shape(s.Curve, samples[i][0])
		samples[i][1] = shape(s.Curve, samples[i][1])
	}
	return n, ok
}

func (s *Shaper) Err() error { return s.Streamer.Err() }

func shape(curve []float64, x float64) float64 {
	last := len(curve) - 1
	v := float64(last) * (x + 1) / 2
	if v <= 0 {
		return curve[0]
	}
	if v >= float64(last) {
		return curve[last]
	}
	k := int(v)
	f := v - float64(k)
	return curve[k]*(1-f) + curve[k+1]*f
}
