package config

import (
	_ "embed"
	"math"
)

//go:embed defaults.yaml
var defaultYAML []byte

// Default returns the built-in configuration, matching defaults.yaml.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 600,
			Title:  "Audio Dodge",
		},
		Audio: AudioConfig{
			FFTSize:          256,
			Smoothing:        0.8,
			MinDecibels:      -100,
			MaxDecibels:      -30,
			Volume:           0.5,
			Distortion:       DistortionNone,
			DistortionAmount: 20,
			TapSize:          8192,
		},
		Bars: BarsConfig{
			RadiusOffset:    75,
			MinHeight:       200,
			MaxHeight:       270,
			Spacing:         4,
			Exponent:        2,
			AngularVelocity: math.Pi / 36,
		},
		Rings: RingsConfig{
			OuterBaseRadius: 160,
			OuterAmplitude:  40,
			LineWidth:       2,
		},
		Player: PlayerConfig{
			Speed:       200,
			Radius:      10,
			Friction:    0.9,
			RadiusLimit: 200,
		},
		Projectile: ProjectileConfig{
			SpeedScale:     100,
			SpeedBase:      50,
			RadiusScale:    5,
			RadiusBase:     5,
			LifetimeScale:  2,
			LifetimeBase:   2,
			MappingPower:   2,
			HomingStrength: HomingMultiplier,
			Damage:         1,
		},
		Spawn: SpawnConfig{
			Interval: 0.7,
			Stride:   4,
			Delta:    20,
			Ceiling:  230,
		},
		Draw: DrawParams{
			Bars:          true,
			Game:          true,
			RingCount:     16,
			RingMaxRadius: 150,
		},
	}
}
