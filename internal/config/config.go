// Package config holds the tuning values and draw toggles of the visualizer.
// A Config is loaded and validated once at startup and is read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	// ScorePerDodge is awarded for each projectile that expires or reaches its target.
	ScorePerDodge = 10

	// LockoutSeconds is the input cooldown after the player hits the boundary.
	LockoutSeconds = 0.1

	// HomingMultiplier scales the per-second nudge toward the player.
	HomingMultiplier = 0.5

	// NoiseProbability is the per-pixel chance of the salt-noise effect.
	NoiseProbability = 0.05
	// NoiseValue is the RGB value forced by the salt-noise effect.
	NoiseValue = 170

	// Scanline groups for the static effect.
	StaticMinRun   = 10
	StaticMaxRun   = 80
	StaticMaxShift = 24

	// Emboss bias added to every channel.
	EmbossBias = 127
)

// Distortion names a waveshaper curve applied by the audio engine.
type Distortion string

const (
	DistortionNone    Distortion = "none"
	DistortionStatic  Distortion = "static"
	DistortionBuzz    Distortion = "buzz"
	DistortionBoosted Distortion = "boosted"
)

// Distortions lists every accepted distortion kind in cycling order.
var Distortions = []Distortion{DistortionNone, DistortionStatic, DistortionBuzz, DistortionBoosted}

// ParseDistortion accepts a distortion name case-insensitively. An empty name means none.
func ParseDistortion(s string) (Distortion, error) {
	if s == "" {
		return DistortionNone, nil
	}
	d := Distortion(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Distortions {
		if d == known {
			return d, nil
		}
	}
	return DistortionNone, fmt.Errorf("%w: unknown distortion %q", ErrInvalid, s)
}

// Config is the full tuning of one run.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Audio      AudioConfig      `yaml:"audio"`
	Bars       BarsConfig       `yaml:"bars"`
	Rings      RingsConfig      `yaml:"rings"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Draw       DrawParams       `yaml:"draw"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AudioConfig configures the analyser and the output chain.
type AudioConfig struct {
	FFTSize          int        `yaml:"fft_size"`
	Smoothing        float64    `yaml:"smoothing"`
	MinDecibels      float64    `yaml:"min_decibels"`
	MaxDecibels      float64    `yaml:"max_decibels"`
	Volume           float64    `yaml:"volume"`
	Distortion       Distortion `yaml:"distortion"`
	DistortionAmount float64    `yaml:"distortion_amount"`
	TapSize          int        `yaml:"tap_size"`
}

// Bins is the length of both sample arrays: half the transform window.
func (a AudioConfig) Bins() int { return a.FFTSize / 2 }

// BarsConfig shapes the radial bar visualizer.
type BarsConfig struct {
	RadiusOffset    float64 `yaml:"radius_offset"`
	MinHeight       float64 `yaml:"min_height"`
	MaxHeight       float64 `yaml:"max_height"`
	Spacing         float64 `yaml:"spacing"`
	Exponent        float64 `yaml:"exponent"`
	AngularVelocity float64 `yaml:"angular_velocity"`
}

// RingsConfig shapes the waveform ring polyline.
type RingsConfig struct {
	OuterBaseRadius float64 `yaml:"outer_base_radius"`
	OuterAmplitude  float64 `yaml:"outer_amplitude"`
	LineWidth       float64 `yaml:"line_width"`
}

type PlayerConfig struct {
	Speed       float64 `yaml:"speed"`
	Radius      float64 `yaml:"radius"`
	Friction    float64 `yaml:"friction"`
	RadiusLimit float64 `yaml:"radius_limit"`
}

// ProjectileConfig holds the magnitude mappings: value = m^exp*scale + base.
type ProjectileConfig struct {
	SpeedScale     float64 `yaml:"speed_scale"`
	SpeedBase      float64 `yaml:"speed_base"`
	RadiusScale    float64 `yaml:"radius_scale"`
	RadiusBase     float64 `yaml:"radius_base"`
	LifetimeScale  float64 `yaml:"lifetime_scale"`
	LifetimeBase   float64 `yaml:"lifetime_base"`
	MappingPower   float64 `yaml:"mapping_power"`
	HomingStrength float64 `yaml:"homing_strength"`
	Damage         int     `yaml:"damage"`
}

// SpawnConfig governs transient detection.
type SpawnConfig struct {
	Interval float64 `yaml:"interval"`
	Stride   int     `yaml:"stride"`
	Delta    int     `yaml:"delta"`
	Ceiling  int     `yaml:"ceiling"`
}

// DrawParams are the per-frame visual toggles. Consumers receive a copy and never
// write to it; changes arrive through the control dispatcher.
type DrawParams struct {
	Gradient      bool    `yaml:"gradient"`
	Bars          bool    `yaml:"bars"`
	Circles       bool    `yaml:"circles"`
	Noise         bool    `yaml:"noise"`
	Invert        bool    `yaml:"invert"`
	Emboss        bool    `yaml:"emboss"`
	Static        bool    `yaml:"static"`
	OuterRing     bool    `yaml:"outer_ring"`
	Game          bool    `yaml:"game"`
	RingCount     int     `yaml:"ring_count"`
	RingMaxRadius float64 `yaml:"ring_max_radius"`
}

// AnyEffect reports whether a pixel post-effect is enabled.
func (p DrawParams) AnyEffect() bool {
	return p.Noise || p.Invert || p.Static || p.Emboss
}

// Validate checks ranges once so the per-frame code can trust the values.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)

	n := c.Audio.FFTSize
	check(n >= 32 && n <= 32768 && n&(n-1) == 0, "fft_size %d must be a power of two in [32, 32768]", n)
	check(c.Audio.Smoothing >= 0 && c.Audio.Smoothing < 1, "smoothing %v must be in [0, 1)", c.Audio.Smoothing)
	check(c.Audio.MinDecibels < c.Audio.MaxDecibels, "min_decibels %v must be below max_decibels %v", c.Audio.MinDecibels, c.Audio.MaxDecibels)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 2, "volume %v must be in [0, 2]", c.Audio.Volume)
	check(c.Audio.DistortionAmount >= 0 && c.Audio.DistortionAmount <= 100, "distortion_amount %v must be in [0, 100]", c.Audio.DistortionAmount)
	check(c.Audio.TapSize >= n, "tap_size %d must hold one fft window (%d)", c.Audio.TapSize, n)
	if _, err := ParseDistortion(string(c.Audio.Distortion)); err != nil {
		errs = append(errs, err)
	}

	check(c.Bars.MinHeight >= 0 && c.Bars.MinHeight <= c.Bars.MaxHeight, "bar heights min %v max %v", c.Bars.MinHeight, c.Bars.MaxHeight)
	check(c.Bars.Exponent >= 0, "bar exponent %v must be >= 0", c.Bars.Exponent)
	check(c.Bars.Spacing >= 0, "bar spacing %v must be >= 0", c.Bars.Spacing)

	check(c.Player.Speed >= 0, "player speed %v", c.Player.Speed)
	check(c.Player.Radius > 0, "player radius %v", c.Player.Radius)
	check(c.Player.Friction >= 0 && c.Player.Friction <= 1, "player friction %v must be in [0, 1]", c.Player.Friction)
	check(c.Player.RadiusLimit > 0, "player radius_limit %v", c.Player.RadiusLimit)

	check(c.Projectile.MappingPower >= 0, "projectile mapping_power %v", c.Projectile.MappingPower)
	check(c.Projectile.RadiusBase > 0, "projectile radius_base %v", c.Projectile.RadiusBase)
	check(c.Projectile.LifetimeBase > 0, "projectile lifetime_base %v", c.Projectile.LifetimeBase)

	check(c.Spawn.Interval > 0, "spawn interval %v", c.Spawn.Interval)
	check(c.Spawn.Stride >= 1, "spawn stride %d", c.Spawn.Stride)
	check(c.Spawn.Delta >= 0 && c.Spawn.Ceiling >= 0 && c.Spawn.Ceiling <= 255, "spawn thresholds delta %d ceiling %d", c.Spawn.Delta, c.Spawn.Ceiling)

	check(c.Draw.RingCount >= 0, "ring_count %d", c.Draw.RingCount)
	check(c.Draw.RingMaxRadius >= 0, "ring_max_radius %v", c.Draw.RingMaxRadius)

	return errors.Join(errs...)
}
