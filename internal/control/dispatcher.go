// Package control turns UI changes into explicit events. A Change names a field
// and its new value; the Dispatcher stages changes from any goroutine and the
// frame loop applies them in order, updating the draw parameters or issuing
// the matching engine command.
package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/audio-dodge/internal/config"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrBadValue     = errors.New("bad value")
)

// Field names a recognised setting.
type Field string

const (
	Gradient      Field = "gradient"
	Bars          Field = "bars"
	Circles       Field = "circles"
	Noise         Field = "noise"
	Invert        Field = "invert"
	Emboss        Field = "emboss"
	Static        Field = "static"
	OuterRing     Field = "outer_ring"
	Game          Field = "game"
	RingCount     Field = "ring_count"
	RingMaxRadius Field = "ring_max_radius"

	Volume           Field = "volume"
	Distortion       Field = "distortion"
	DistortionAmount Field = "distortion_amount"
	Track            Field = "track"
	Playing          Field = "playing"
	ClearProjectiles Field = "clear_projectiles"
)

// ToggleFields are the boolean draw toggles, in display order.
var ToggleFields = []Field{Gradient, Bars, Circles, Noise, Invert, Emboss, Static, OuterRing, Game}

type flip struct{}

// Flip as a Change value negates a boolean field or toggles playback.
var Flip = flip{}

// Change is one staged setting update.
type Change struct {
	Field Field
	Value any
}

// Engine is the audio command surface the dispatcher drives.
type Engine interface {
	SetVolume(gain float64)
	Volume() float64
	LoadTrack(path string) error
	Play()
	Pause()
	Toggle()
	SetDistortion(kind config.Distortion, amount float64) error
	Distortion() (config.Distortion, float64)
}

// Sim is the part of the simulation the UI may command.
type Sim interface {
	Clear()
	ResetScore()
}

type Dispatcher struct {
	mu      sync.Mutex
	pending []Change

	params config.DrawParams
	engine Engine
	sim    Sim
	logger *log.Logger
}

func NewDispatcher(params config.DrawParams, engine Engine, sim Sim, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		params: params,
		engine: engine,
		sim:    sim,
		logger: logger,
	}
}

// Submit stages a change for the next Drain. Safe from any goroutine.
func (d *Dispatcher) Submit(c Change) {
	d.mu.Lock()
	d.pending = append(d.pending, c)
	d.mu.Unlock()
}

// Toggle stages a Flip of a boolean field.
func (d *Dispatcher) Toggle(f Field) { d.Submit(Change{Field: f, Value: Flip}) }

// Params returns the current draw parameters by value.
func (d *Dispatcher) Params() config.DrawParams { return d.params }

// Drain applies every staged change in submission order and returns the
// resulting parameters. A failing change is skipped; the others still apply.
func (d *Dispatcher) Drain() (config.DrawParams, error) {
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()

	var errs []error
	for _, c := range batch {
		if err := d.Apply(c); err != nil {
			d.logger.Warn("change rejected", "field", c.Field, "value", c.Value, "error", err)
			errs = append(errs, err)
		}
	}
	return d.params, errors.Join(errs...)
}

// Apply performs one change immediately. Only the frame goroutine calls it.
func (d *Dispatcher) Apply(c Change) error {
	if ptr := d.toggle(c.Field); ptr != nil {
		v, err := asBool(c.Value, *ptr)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Field, err)
		}
		*ptr = v
		d.logger.Debug("toggle", "field", c.Field, "on", v)
		return nil
	}

	switch c.Field {
	case RingCount:
		n, err := asNumber(c.Value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: %w: %v", c.Field, ErrBadValue, c.Value)
		}
		d.params.RingCount = int(n)
	case RingMaxRadius:
		r, err := asNumber(c.Value)
		if err != nil || r < 0 {
			return fmt.Errorf("%s: %w: %v", c.Field, ErrBadValue, c.Value)
		}
		d.params.RingMaxRadius = r
	case Volume:
		v, err := asNumber(c.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Field, err)
		}
		d.engine.SetVolume(v)
	case Distortion:
		s, ok := c.Value.(string)
		if !ok {
			if k, isKind := c.Value.(config.Distortion); isKind {
				s, ok = string(k), true
			}
		}
		if !ok {
			return fmt.Errorf("%s: %w: %v", c.Field, ErrBadValue, c.Value)
		}
		_, amount := d.engine.Distortion()
		return d.engine.SetDistortion(config.Distortion(s), amount)
	case DistortionAmount:
		v, err := asNumber(c.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Field, err)
		}
		kind, _ := d.engine.Distortion()
		return d.engine.SetDistortion(kind, v)
	case Track:
		path, ok := c.Value.(string)
		if !ok || path == "" {
			return fmt.Errorf("%s: %w: %v", c.Field, ErrBadValue, c.Value)
		}
		d.engine.Pause()
		if err := d.engine.LoadTrack(path); err != nil {
			return err
		}
		d.sim.ResetScore()
	case Playing:
		switch v := c.Value.(type) {
		case flip:
			d.engine.Toggle()
		case bool:
			if v {
				d.engine.Play()
			} else {
				d.engine.Pause()
			}
		default:
			return fmt.Errorf("%s: %w: %v", c.Field, ErrBadValue, c.Value)
		}
	case ClearProjectiles:
		d.sim.Clear()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, c.Field)
	}
	return nil
}

func (d *Dispatcher) toggle(f Field) *bool {
	p := &d.params
	switch f {
	case Gradient:
		return &p.Gradient
	case Bars:
		return &p.Bars
	case Circles:
		return &p.Circles
	case Noise:
		return &p.Noise
	case Invert:
		return &p.Invert
	case Emboss:
		return &p.Emboss
	case Static:
		return &p.Static
	case OuterRing:
		return &p.OuterRing
	case Game:
		return &p.Game
	}
	return nil
}

// Enabled reports a toggle's current state.
func (d *Dispatcher) Enabled(f Field) bool {
	if p := d.toggle(f); p != nil {
		return *p
	}
	return false
}

func asBool(v any, current bool) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case flip:
		return !current, nil
	}
	return false, fmt.Errorf("%w: %v is not a bool", ErrBadValue, v)
}

func asNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: %v is not a number", ErrBadValue, v)
}
