package audio

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/faiface/beep"

	"github.com/iburimskiy/audio-dodge/internal/config"
)

func TestMakeDistortionCurve(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	if c := MakeDistortionCurve(config.DistortionNone, 50, rng); c != nil {
		t.Errorf("none curve = %v, expected nil", c)
	}

	buzz := MakeDistortionCurve(config.DistortionBuzz, 50, rng)
	if len(buzz) != CurveSize {
		t.Fatalf("len = %d, expected %d", len(buzz), CurveSize)
	}
	// x = 0 at i = 128.
	if buzz[128] != 0 {
		t.Errorf("buzz(0) = %v, expected 0", buzz[128])
	}
	if want := -1 + math.Sin(1); math.Abs(buzz[0]-want) > 1e-12 {
		t.Errorf("buzz(-1) = %v, expected %v", buzz[0], want)
	}

	boosted := MakeDistortionCurve(config.DistortionBoosted, 100, rng)
	if want := -3 * math.Pi / (math.Pi + 20); math.Abs(boosted[0]-want) > 1e-12 {
		t.Errorf("boosted(-1) = %v, expected %v", boosted[0], want)
	}

	static := MakeDistortionCurve(config.DistortionStatic, 100, rng)
	for i, v := range static {
		x := float64(i)*2/CurveSize - 1
		if math.Abs(v) < math.Abs(x)-1e-12 || math.Abs(v) > 2*math.Abs(x)+1e-12 {
			t.Fatalf("static[%d] = %v outside [|x|, 2|x|] for x = %v", i, v, x)
		}
	}
}

func constant(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, -v}
		}
		return len(samples), true
	})
}

func TestShaperPassThroughWithoutCurve(t *testing.T) {
	s := &Shaper{Streamer: constant(0.3)}
	buf := make([][2]float64, 4)
	s.Stream(buf)
	if buf[0] != [2]float64{0.3, -0.3} {
		t.Errorf("sample = %v, expected unchanged", buf[0])
	}
}

func TestShaperInterpolates(t *testing.T) {
	curve := []float64{-10, 0, 10}
	tests := []struct {
		in, want float64
	}{
		{-1, -10},
		{-2, -10},
		{0, 0},
		{0.5, 5},
		{1, 10},
		{3, 10},
	}
	for _, tc := range tests {
		if got := shape(curve, tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("shape(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	s := &Shaper{Streamer: constant(0.5), Curve: curve}
	buf := make([][2]float64, 2)
	s.Stream(buf)
	if buf[1] != [2]float64{5, -5} {
		t.Errorf("shaped = %v, expected [5 -5]", buf[1])
	}
}
