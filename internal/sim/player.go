// Package sim is the dodge mini-game: a player steered inside a circular arena
// and projectiles launched from the visualizer's bar tips.
package sim

import (
	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/geometry"
)

// Direction is a held movement input.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// ShadowDistance is how far the drop shadow sits from a body, away from the centre.
const ShadowDistance = 3

// Body is what the renderer needs to draw an entity.
type Body struct {
	Pos    geometry.Vec
	Radius float64
	Shadow geometry.Vec
	Bar    int
}

// Player is steered by held directions and kept inside RadiusLimit.
// The zero position is the arena centre.
type Player struct {
	Pos         geometry.Vec
	Accel       geometry.Vec
	Speed       float64
	Radius      float64
	Friction    float64
	RadiusLimit float64

	lockout float64
	held    map[Direction]uint64
	seq     uint64
	// dropped keeps the press order of directions cleared by the boundary, so
	// a key still down when the lockout ends keeps its place.
	dropped map[Direction]uint64
}

func NewPlayer(cfg config.PlayerConfig) *Player {
	return &Player{
		Speed:       cfg.Speed,
		Radius:      cfg.Radius,
		Friction:    cfg.Friction,
		RadiusLimit: cfg.RadiusLimit,
		held:        make(map[Direction]uint64, 4),
		dropped:     make(map[Direction]uint64, 4),
	}
}

// Locked reports whether input is currently ignored.
func (p *Player) Locked() bool { return p.lockout > 0 }

// Held reports whether d is currently held.
func (p *Player) Held(d Direction) bool {
	_, ok := p.held[d]
	return ok
}

// HandleInput stages a key change for the next Advance. It is a no-op while
// locked out. Re-pressing a held key keeps its original press order.
// A direction cleared by the boundary and pressed again after the lockout
// gets its earlier press order back; a release seen during the lockout
// forgets that order.
func (p *Player) HandleInput(d Direction, down bool) {
	if p.Locked() {
		if !down {
			delete(p.dropped, d)
		}
		return
	}
	if !down {
		delete(p.held, d)
		delete(p.dropped, d)
		return
	}
	if _, ok := p.held[d]; ok {
		return
	}
	if seq, ok := p.dropped[d]; ok {
		delete(p.dropped, d)
		p.held[d] = seq
		return
	}
	p.seq++
	p.held[d] = p.seq
}

// axis returns -1, 1 or 0 for a pair of opposite directions; the most recently
// pressed one wins when both are held.
func (p *Player) axis(neg, pos Direction) (float64, bool) {
	n, nok := p.held[neg]
	q, pok := p.held[pos]
	switch {
	case nok && pok:
		if n > q {
			return -1, true
		}
		return 1, true
	case nok:
		return -1, true
	case pok:
		return 1, true
	}
	return 0, false
}

// Advance integrates one step. A step that would reach RadiusLimit is rejected:
// the player stays put, is pushed back toward the centre, loses all held input
// and is locked out briefly. Friction damps acceleration every step.
func (p *Player) Advance(dt float64) {
	if p.lockout > 0 {
		p.lockout -= dt
		if p.lockout < 0 {
			p.lockout = 0
		}
	}

	if x, ok := p.axis(Left, Right); ok {
		p.Accel.X = x
	}
	if y, ok := p.axis(Up, Down); ok {
		p.Accel.Y = y
	}

	next := p.Pos.Add(p.Accel.Scale(p.Speed * dt))
	if next.Len() >= p.RadiusLimit {
		p.Accel = p.Pos.Toward(geometry.Vec{})
		for d, seq := range p.held {
			p.dropped[d] = seq
		}
		clear(p.held)
		p.lockout = config.LockoutSeconds
	} else {
		p.Pos = next
	}

	p.Accel = p.Accel.Scale(p.Friction)
}

// Body describes the player for drawing.
func (p *Player) Body() Body {
	return Body{
		Pos:    p.Pos,
		Radius: p.Radius,
		Shadow: p.Pos.Unit().Scale(ShadowDistance),
	}
}
