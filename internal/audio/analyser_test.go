package audio

import (
	"math"
	"testing"

	"github.com/iburimskiy/audio-dodge/internal/config"
)

func testAnalyser() *Analyser {
	return NewAnalyser(config.Default().Audio)
}

func TestAnalyserSilenceIsZero(t *testing.T) {
	a := testAnalyser()
	dst := make([]byte, a.Bins())
	a.Frequency(make([]float64, a.Size()), dst)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("bin %d = %d, expected 0 for silence", i, v)
		}
	}
}

func TestAnalyserSinePeak(t *testing.T) {
	a := testAnalyser()
	const bin = 16
	samples := make([]float64, a.Size())
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * bin * float64(i) / float64(len(samples)))
	}

	dst := make([]byte, a.Bins())
	a.Frequency(samples, dst)

	peak := 0
	for i, v := range dst {
		if v > dst[peak] {
			peak = i
		}
	}
	if peak != bin {
		t.Errorf("peak bin = %d, expected %d", peak, bin)
	}
	if dst[bin] < 200 {
		t.Errorf("peak value = %d, expected a loud bin", dst[bin])
	}
	if dst[100] >= dst[bin] {
		t.Errorf("far bin %d should be quieter than the peak", dst[100])
	}
}

func TestAnalyserSmoothingDecays(t *testing.T) {
	a := testAnalyser()
	samples := make([]float64, a.Size())
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(len(samples)))
	}
	dst := make([]byte, a.Bins())
	a.Frequency(samples, dst)
	loud := dst[8]

	silence := make([]float64, a.Size())
	a.Frequency(silence, dst)
	if dst[8] == 0 || dst[8] > loud {
		t.Errorf("after silence bin = %d, expected decay below %d but not to zero", dst[8], loud)
	}

	a.Reset()
	a.Frequency(silence, dst)
	if dst[8] != 0 {
		t.Errorf("after Reset bin = %d, expected 0", dst[8])
	}
}

func TestAnalyserWaveform(t *testing.T) {
	a := testAnalyser()
	samples := []float64{5, 5, 0, 1, -1, 0.5, -2}
	dst := make([]byte, 5)
	a.Waveform(samples, dst)

	want := []byte{128, 255, 0, 192, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, expected %d", i, dst[i], want[i])
		}
	}
}
