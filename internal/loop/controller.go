// Package loop drives one frame at a time: measure elapsed time, pull spectrum
// samples, draw the visualizer, step the game, draw the game, post-process, and
// spawn projectiles on the spawn timer.
package loop

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/control"
	"github.com/iburimskiy/audio-dodge/internal/geometry"
	"github.com/iburimskiy/audio-dodge/internal/render"
	"github.com/iburimskiy/audio-dodge/internal/sim"
)

// ErrSkipped wraps a spectrum read failure; the frame drew and simulated nothing.
var ErrSkipped = errors.New("frame skipped")

// SpectrumSource fills caller-owned buffers with the latest analysis. Both
// calls are synchronous reads of already-buffered audio.
type SpectrumSource interface {
	FrequencyData(dst []byte) error
	WaveformData(dst []byte) error
}

// Stats describes one completed frame.
type Stats struct {
	Elapsed float64
	Spawned int
	Dodged  int
	Hit     int

	// Rejected joins the staged changes that failed to apply this frame.
	Rejected error
}

// Controller owns the sample buffers, the spawn timer and the visualizer
// rotation. All of its methods run on the frame goroutine.
type Controller struct {
	src    SpectrumSource
	sim    *sim.Simulation
	rend   *render.Renderer
	disp   *control.Dispatcher
	clock  Clock
	logger *log.Logger

	interval        float64
	angularVelocity float64
	boundary        float64

	freq []byte
	wave []byte
	prev []byte

	last     int64
	started  bool
	timer    float64
	rotation float64
	uptime   float64
	bodies   []sim.Body
}

// NewController builds a controller for sample buffers of length bins.
func NewController(cfg config.Config, bins int, src SpectrumSource, s *sim.Simulation, r *render.Renderer, d *control.Dispatcher, clock Clock, logger *log.Logger) *Controller {
	return &Controller{
		src:             src,
		sim:             s,
		rend:            r,
		disp:            d,
		clock:           clock,
		logger:          logger,
		interval:        cfg.Spawn.Interval,
		angularVelocity: cfg.Bars.AngularVelocity,
		boundary:        cfg.Player.RadiusLimit + cfg.Player.Radius,
		freq:            make([]byte, bins),
		wave:            make([]byte, bins),
		prev:            make([]byte, bins),
	}
}

// Rotation is the visualizer angle, shared by bar drawing and spawn placement.
func (c *Controller) Rotation() float64 { return c.rotation }

// HandleKey stages a movement key for the next frame.
func (c *Controller) HandleKey(d sim.Direction, down bool) { c.sim.HandleInput(d, down) }

// elapsed returns seconds since the previous frame, zero on the first. Large
// gaps are passed through as-is; a clock stepping backwards yields zero.
func (c *Controller) elapsed() float64 {
	now := c.clock.Now().UnixNano()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := float64(now-c.last) / 1e9
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Frame runs one full frame onto s. A failed frequency read skips the frame
// and returns an error wrapping ErrSkipped; the waveform is optional.
func (c *Controller) Frame(s render.Surface) (Stats, error) {
	dt := c.elapsed()
	st := Stats{Elapsed: dt}

	params, rejected := c.disp.Drain()
	st.Rejected = rejected

	if err := c.src.FrequencyData(c.freq); err != nil {
		return st, fmt.Errorf("%w: %w", ErrSkipped, err)
	}
	wave := c.wave
	if err := c.src.WaveformData(c.wave); err != nil {
		wave = nil
	}

	c.uptime += dt
	frame := render.Frame{
		Frequency: c.freq,
		Waveform:  wave,
		Time:      c.uptime,
		Params:    params,
		Boundary:  c.boundary,
	}

	c.rend.Background(s, frame)

	c.rotation = geometry.Rotate(c.rotation, c.angularVelocity, dt)
	frame.Rotation = c.rotation
	c.rend.Visualizer(s, frame)

	if params.Game {
		adv := c.sim.Advance(dt)
		st.Dodged, st.Hit = adv.Dodged, adv.Hit
	}

	c.bodies = c.sim.Bodies(c.bodies[:0])
	frame.Player = c.sim.Player.Body()
	frame.Projectiles = c.bodies
	c.rend.Objects(s, frame)
	c.rend.PostEffects(s, params)

	c.timer += dt
	if c.timer >= c.interval {
		c.timer = 0
		if params.Game {
			st.Spawned = c.sim.SpawnFromTransients(c.prev, c.freq, c.rotation)
		}
	}
	if !params.Game {
		// Track the spectrum while hidden so re-enabling does not fire on
		// every bin that moved in the meantime.
		copy(c.prev, c.freq)
	}

	if st.Spawned+st.Dodged+st.Hit > 0 {
		c.logger.Debug("frame", "dt", dt, "spawned", st.Spawned, "dodged", st.Dodged, "hit", st.Hit, "score", c.sim.Score())
	}
	return st, nil
}
