package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/iburimskiy/audio-dodge/internal/config"
)

// Analyser turns a window of time-domain samples into byte spectra the way a
// browser analyser node does: Blackman window, FFT, magnitude/N, temporal
// smoothing, then decibels mapped linearly onto [0,255].
// It is not safe for concurrent use.
type Analyser struct {
	size      int
	coeffs    []float64
	scratch   []float64
	smoothed  []float64
	smoothing float64
	minDB     float64
	maxDB     float64
}

func NewAnalyser(cfg config.AudioConfig) *Analyser {
	return &Analyser{
		size:      cfg.FFTSize,
		coeffs:    window.Blackman(cfg.FFTSize),
		scratch:   make([]float64, cfg.FFTSize),
		smoothed:  make([]float64, cfg.FFTSize/2),
		smoothing: cfg.Smoothing,
		minDB:     cfg.MinDecibels,
		maxDB:     cfg.MaxDecibels,
	}
}

// Size is the transform window length.
func (a *Analyser) Size() int { return a.size }

// Bins is the number of frequency bins, half the window.
func (a *Analyser) Bins() int { return a.size / 2 }

// Frequency analyses samples (len Size) into dst (len Bins).
func (a *Analyser) Frequency(samples []float64, dst []byte) {
	for i := range a.scratch {
		v := 0.0
		if i < len(samples) {
			v = samples[i]
		}
		a.scratch[i] = v * a.coeffs[i]
	}
	spectrum := fft.FFTReal(a.scratch)

	scale := 255 / (a.maxDB - a.minDB)
	n := float64(a.size)
	for k := 0; k < len(a.smoothed) && k < len(dst); k++ {
		mag := cmplx.Abs(spectrum[k]) / n
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		if a.smoothed[k] == 0 {
			dst[k] = 0
			continue
		}
		db := 20 * math.Log10(a.smoothed[k])
		dst[k] = toByte(scale * (db - a.minDB))
	}
}

// Waveform maps the last len(dst) samples in [-1,1] to bytes centred on 128.
func (a *Analyser) Waveform(samples []float64, dst []byte) {
	off := max(len(samples)-len(dst), 0)
	for i := range dst {
		v := 0.0
		if off+i < len(samples) {
			v = samples[off+i]
		}
		dst[i] = toByte(128 * (1 + v))
	}
}

// Reset forgets the smoothing history.
func (a *Analyser) Reset() { clear(a.smoothed) }

func toByte(v float64) byte {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
