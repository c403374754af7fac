// Package audio plays a track through beep and exposes the played signal as
// byte spectra for the visualizer.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/audio-dodge/internal/config"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNoTrack           = errors.New("no track loaded")
	ErrBufferSize        = errors.New("sample buffer has the wrong length")
)

// Engine owns the playback chain: decoder -> tap -> shaper -> volume -> ctrl -> speaker.
// Commands come from the frame goroutine; the chain runs on the speaker goroutine
// and is only mutated under speaker.Lock.
type Engine struct {
	cfg      config.AudioConfig
	logger   *log.Logger
	rng      *rand.Rand
	analyser *Analyser
	window   []float64

	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	shaper      *Shaper
	tap         *Tap

	gain       float64
	distortion config.Distortion
	amount     float64
	paused     bool
	initDone   bool
	ended      atomic.Bool
}

func NewEngine(cfg config.AudioConfig, logger *log.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		logger:     logger,
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		analyser:   NewAnalyser(cfg),
		window:     make([]float64, cfg.FFTSize),
		gain:       cfg.Volume,
		distortion: cfg.Distortion,
		amount:     cfg.DistortionAmount,
		paused:     true,
	}
}

// Bins is the length of the buffers FrequencyData and WaveformData fill.
func (e *Engine) Bins() int { return e.analyser.Bins() }

// FrequencyData fills dst with the current byte spectrum.
func (e *Engine) FrequencyData(dst []byte) error {
	if err := e.checkBuffer(dst); err != nil {
		return err
	}
	e.sample()
	e.analyser.Frequency(e.window, dst)
	return nil
}

// WaveformData fills dst with the latest time-domain samples as bytes.
func (e *Engine) WaveformData(dst []byte) error {
	if err := e.checkBuffer(dst); err != nil {
		return err
	}
	e.sample()
	e.analyser.Waveform(e.window, dst)
	return nil
}

// sample loads the analysis window. A paused or finished track is silence,
// so the smoothed spectrum decays instead of freezing on the last window.
func (e *Engine) sample() {
	if e.paused || e.ended.Load() {
		clear(e.window)
		return
	}
	e.tap.Snapshot(e.window)
}

func (e *Engine) checkBuffer(dst []byte) error {
	if e.tap == nil {
		return ErrNoTrack
	}
	if len(dst) != e.Bins() {
		return fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(dst), e.Bins())
	}
	return nil
}

// decode picks a decoder by file extension.
func decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// LoadTrack stops the current track and loads path, paused at the start.
func (e *Engine) LoadTrack(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open track: %w", err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}

	// streamer -> tap -> shaper -> volume -> ctrl
	tap := NewTap(streamer, e.cfg.TapSize)
	shaper := &Shaper{Streamer: tap, Curve: MakeDistortionCurve(e.distortion, e.amount, e.rng)}
	volume := &effects.Volume{Streamer: shaper, Base: 2}
	applyGain(volume, e.gain)
	ctrl := &beep.Ctrl{Streamer: volume, Paused: true}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !e.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		e.initDone = true
	case e.format.SampleRate != format.SampleRate:
		// Re-init when sample rate changes
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	e.closeCurrent()

	e.currentFile = f
	e.streamer = streamer
	e.format = format
	e.tap = tap
	e.shaper = shaper
	e.volume = volume
	e.ctrl = ctrl
	e.paused = true
	e.ended.Store(false)
	e.analyser.Reset()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		e.ended.Store(true)
	})))

	e.logger.Info("track loaded", "path", path, "rate", format.SampleRate, "duration", e.duration())
	return nil
}

func (e *Engine) closeCurrent() {
	if e.streamer != nil {
		_ = e.streamer.Close()
		e.streamer = nil
	}
	if e.currentFile != nil {
		_ = e.currentFile.Close()
		e.currentFile = nil
	}
}

// Play resumes playback. It is a no-op without a track.
func (e *Engine) Play() { e.setPaused(false) }

// Pause halts playback. It is a no-op without a track.
func (e *Engine) Pause() { e.setPaused(true) }

// Toggle flips between playing and paused.
func (e *Engine) Toggle() { e.setPaused(!e.paused) }

// Playing reports whether a track is loaded and not paused.
func (e *Engine) Playing() bool { return e.ctrl != nil && !e.paused && !e.ended.Load() }

func (e *Engine) setPaused(p bool) {
	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.paused = p
	e.ctrl.Paused = p
	speaker.Unlock()
	e.logger.Debug("playback", "paused", p)
}

// SetVolume sets the linear gain, clamped to [0,2].
func (e *Engine) SetVolume(gain float64) {
	e.gain = math.Max(0, math.Min(2, gain))
	if e.volume == nil {
		return
	}
	speaker.Lock()
	applyGain(e.volume, e.gain)
	speaker.Unlock()
}

// Volume is the current linear gain.
func (e *Engine) Volume() float64 { return e.gain }

// applyGain expresses a linear gain as effects.Volume's base-2 exponent.
func applyGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(gain)
}

// SetDistortion swaps the waveshaper curve. Amount must be in [0,100].
func (e *Engine) SetDistortion(kind config.Distortion, amount float64) error {
	kind, err := config.ParseDistortion(string(kind))
	if err != nil {
		return err
	}
	if amount < 0 || amount > 100 {
		return fmt.Errorf("%w: distortion amount %v outside [0, 100]", config.ErrInvalid, amount)
	}
	e.distortion = kind
	e.amount = amount
	curve := MakeDistortionCurve(kind, amount, e.rng)
	if e.shaper != nil {
		speaker.Lock()
		e.shaper.Curve = curve
		speaker.Unlock()
	}
	e.logger.Debug("distortion", "kind", kind, "amount", amount)
	return nil
}

// Distortion returns the active curve kind and amount.
func (e *Engine) Distortion() (config.Distortion, float64) { return e.distortion, e.amount }

// Progress is elapsed/duration of the current track in [0,1], 0 without a track.
func (e *Engine) Progress() float64 {
	if e.streamer == nil {
		return 0
	}
	if e.ended.Load() {
		return 1
	}
	speaker.Lock()
	pos, length := e.streamer.Position(), e.streamer.Len()
	speaker.Unlock()
	if length <= 0 {
		return 0
	}
	return math.Min(1, float64(pos)/float64(length))
}

// Elapsed and Duration of the current track.
func (e *Engine) Elapsed() time.Duration {
	if e.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := e.streamer.Position()
	speaker.Unlock()
	return e.format.SampleRate.D(pos)
}

func (e *Engine) Duration() time.Duration {
	if e.streamer == nil {
		return 0
	}
	return e.duration()
}

func (e *Engine) duration() time.Duration {
	return e.format.SampleRate.D(e.streamer.Len())
}

// Close stops playback and releases the track.
func (e *Engine) Close() {
	if e.initDone {
		speaker.Clear()
	}
	e.closeCurrent()
}
