package loop

import (
	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/geometry"
)

// BarLayout derives the radial bar layout from the window and bar settings.
// The simulation and the renderer must share it.
func BarLayout(cfg config.Config) geometry.BarParams {
	return geometry.BarParams{
		HalfHeight:   float64(cfg.Window.Height) / 2,
		RadiusOffset: cfg.Bars.RadiusOffset,
		MinHeight:    cfg.Bars.MinHeight,
		MaxHeight:    cfg.Bars.MaxHeight,
		Spacing:      cfg.Bars.Spacing,
		Exponent:     cfg.Bars.Exponent,
	}
}
