package sim

import (
	"math"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/geometry"
)

// Outcome is the result of one collision check.
type Outcome int

const (
	Alive Outcome = iota
	Dodged
	Hit
	Gone
)

func (o Outcome) String() string {
	switch o {
	case Alive:
		return "alive"
	case Dodged:
		return "dodged"
	case Hit:
		return "hit"
	case Gone:
		return "gone"
	}
	return "unknown"
}

// Projectile flies from a bar tip toward where the player was at spawn time,
// bending toward the player's live position as it goes.
type Projectile struct {
	Pos       geometry.Vec
	Target    geometry.Vec
	Accel     geometry.Vec
	Speed     float64
	Radius    float64
	Age       float64
	Lifetime  float64
	Homing    float64
	Damage    int
	Magnitude float64
	Bar       int
	Destroy   bool

	player *Player
}

// NewProjectile builds a projectile for a transient of normalized magnitude m in [0,1].
// The target is captured once from the player's current position.
func NewProjectile(pos geometry.Vec, m float64, bar int, player *Player, cfg config.ProjectileConfig) *Projectile {
	shaped := math.Pow(m, cfg.MappingPower)
	target := player.Pos
	return &Projectile{
		Pos:       pos,
		Target:    target,
		Accel:     pos.Toward(target),
		Speed:     shaped*cfg.SpeedScale + cfg.SpeedBase,
		Radius:    shaped*cfg.RadiusScale + cfg.RadiusBase,
		Lifetime:  m*cfg.LifetimeScale + cfg.LifetimeBase,
		Homing:    cfg.HomingStrength,
		Damage:    cfg.Damage,
		Magnitude: m,
		Bar:       bar,
		player:    player,
	}
}

// Advance moves the projectile, then nudges its acceleration toward the player.
// The acceleration is never renormalized, so its magnitude drifts.
func (p *Projectile) Advance(dt float64) {
	if p.Destroy {
		return
	}
	p.Age += dt
	p.Pos = p.Pos.Add(p.Accel.Scale(p.Speed * dt))
	p.Accel = p.Accel.Add(p.Pos.Toward(p.player.Pos).Scale(p.Homing * dt))
}

// Collide checks expiry before contact, so a projectile that runs out exactly
// as it touches the player still counts as dodged. Once destroyed it always
// reports Gone and never scores again.
func (p *Projectile) Collide(score *int) Outcome {
	if p.Destroy {
		return Gone
	}
	if p.Pos.Dist(p.Target) < p.Radius || p.Age > p.Lifetime {
		p.Destroy = true
		*score += config.ScorePerDodge
		return Dodged
	}
	if p.Pos.Dist(p.player.Pos) < p.Radius+p.player.Radius {
		p.Destroy = true
		return Hit
	}
	return Alive
}

func (p *Projectile) Body() Body {
	return Body{
		Pos:    p.Pos,
		Radius: p.Radius,
		Shadow: p.Pos.Unit().Scale(ShadowDistance),
		Bar:    p.Bar,
	}
}
