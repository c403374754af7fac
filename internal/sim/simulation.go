package sim

import (
	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/geometry"
)

// Stats counts what happened during one Advance.
type Stats struct {
	Dodged int
	Hit    int
}

// Simulation owns the player, the live projectiles and the score.
// It is driven from a single goroutine.
type Simulation struct {
	Player *Player

	projectiles []*Projectile
	score       int
	bars        geometry.BarParams
	projCfg     config.ProjectileConfig
	spawnCfg    config.SpawnConfig
}

// New creates a simulation for the given arena. bars must match the layout the
// renderer draws so projectiles leave the visible bar tips.
func New(cfg config.Config, bars geometry.BarParams) *Simulation {
	return &Simulation{
		Player:   NewPlayer(cfg.Player),
		bars:     bars,
		projCfg:  cfg.Projectile,
		spawnCfg: cfg.Spawn,
	}
}

func (s *Simulation) HandleInput(d Direction, down bool) { s.Player.HandleInput(d, down) }

// Score is monotonic until ResetScore.
func (s *Simulation) Score() int { return s.score }

func (s *Simulation) ResetScore() { s.score = 0 }

// Len returns the number of live projectiles.
func (s *Simulation) Len() int { return len(s.projectiles) }

// Clear drops every projectile.
func (s *Simulation) Clear() {
	clear(s.projectiles)
	s.projectiles = s.projectiles[:0]
}

// Spawn adds one projectile at pos.
func (s *Simulation) Spawn(pos geometry.Vec, magnitude float64, bar int) *Projectile {
	p := NewProjectile(pos, magnitude, bar, s.Player, s.projCfg)
	s.projectiles = append(s.projectiles, p)
	return p
}

// SpawnFromTransients fires one projectile per transient in cur (see
// DetectTransients), placed on the tip of the matching bar at the current
// visualizer rotation. It returns how many were spawned.
func (s *Simulation) SpawnFromTransients(prev, cur []byte, rotation float64) int {
	if len(cur) == 0 {
		return 0
	}
	stride := s.spawnCfg.Stride
	fired := DetectTransients(prev, cur, stride, s.spawnCfg.Delta, s.spawnCfg.Ceiling)
	for _, bar := range fired {
		sample := cur[bar*stride]
		pos := geometry.TransientSpawnPoint(sample, bar, stride, len(cur), s.bars, rotation)
		s.Spawn(pos, float64(sample)/geometry.SampleMax, bar)
	}
	return len(fired)
}

// Advance moves every projectile, resolves collisions, drops destroyed
// projectiles, then moves the player.
func (s *Simulation) Advance(dt float64) Stats {
	var st Stats
	for _, p := range s.projectiles {
		p.Advance(dt)
		switch p.Collide(&s.score) {
		case Dodged:
			st.Dodged++
		case Hit:
			st.Hit++
		}
	}
	s.compact()
	s.Player.Advance(dt)
	return st
}

// compact filters destroyed projectiles in place, preserving order.
func (s *Simulation) compact() {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if !p.Destroy {
			kept = append(kept, p)
		}
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}

// Bodies appends the drawable state of every live projectile to dst.
func (s *Simulation) Bodies(dst []Body) []Body {
	for _, p := range s.projectiles {
		dst = append(dst, p.Body())
	}
	return dst
}
