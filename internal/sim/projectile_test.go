package sim

import (
	"math"
	"testing"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/geometry"
)

func testProjectileConfig() config.ProjectileConfig {
	return config.Default().Projectile
}

func TestNewProjectileMapping(t *testing.T) {
	player := testPlayer()
	player.Pos = geometry.Vec{X: 30, Y: 40}
	p := NewProjectile(geometry.Vec{Y: -300}, 0.5, 3, player, testProjectileConfig())

	if p.Speed != 75 {
		t.Errorf("Speed = %v, expected 0.25*100+50", p.Speed)
	}
	if p.Radius != 6.25 {
		t.Errorf("Radius = %v, expected 0.25*5+5", p.Radius)
	}
	if p.Lifetime != 3 {
		t.Errorf("Lifetime = %v, expected 0.5*2+2", p.Lifetime)
	}
	if p.Target != player.Pos {
		t.Errorf("Target = %+v, expected player position %+v", p.Target, player.Pos)
	}
	if math.Abs(p.Accel.Len()-1) > 1e-9 {
		t.Errorf("initial |Accel| = %v, expected 1", p.Accel.Len())
	}

	player.Pos = geometry.Vec{X: -100}
	if p.Target == player.Pos {
		t.Error("target must not follow the player")
	}
}

func TestProjectileHomingIsNotRenormalized(t *testing.T) {
	player := testPlayer()
	p := NewProjectile(geometry.Vec{Y: -100}, 0, 0, player, testProjectileConfig())
	player.Pos = geometry.Vec{X: 500, Y: -100}

	p.Advance(0.1)
	// Moved 5 px down, then nudged 0.05 toward the player (mostly +x).
	if math.Abs(p.Pos.Y+95) > 1e-9 {
		t.Errorf("Pos.Y = %v, expected -95", p.Pos.Y)
	}
	dir := geometry.Vec{Y: -95}.Toward(player.Pos)
	want := geometry.Vec{Y: 1}.Add(dir.Scale(0.05))
	if p.Accel.Dist(want) > 1e-9 {
		t.Errorf("Accel = %+v, expected %+v", p.Accel, want)
	}
	if math.Abs(p.Accel.Len()-1) < 1e-6 {
		t.Error("acceleration should drift away from unit length")
	}
}

func TestProjectileOnPlayerStaysFinite(t *testing.T) {
	player := testPlayer()
	p := NewProjectile(geometry.Vec{}, 0.3, 0, player, testProjectileConfig())
	p.Advance(0.5)
	if math.IsNaN(p.Pos.X) || math.IsNaN(p.Pos.Y) || math.IsNaN(p.Accel.X) || math.IsNaN(p.Accel.Y) {
		t.Errorf("degenerate state leaked NaN: pos %+v accel %+v", p.Pos, p.Accel)
	}
}

func TestProjectileTimeoutRoundTrip(t *testing.T) {
	player := testPlayer()
	p := NewProjectile(geometry.Vec{Y: -300}, 0.5, 0, player, testProjectileConfig())
	player.Pos = geometry.Vec{X: 500, Y: 500}

	score := 0
	if got := p.Collide(&score); got != Alive || p.Destroy {
		t.Fatalf("fresh Collide() = %v, destroy %v; expected alive", got, p.Destroy)
	}

	p.Advance(p.Lifetime + 0.01)
	if got := p.Collide(&score); got != Dodged {
		t.Fatalf("Collide() after lifetime = %v, expected dodged", got)
	}
	if score != config.ScorePerDodge {
		t.Errorf("score = %d, expected %d", score, config.ScorePerDodge)
	}
}

func TestProjectileReachesTarget(t *testing.T) {
	player := testPlayer()
	p := NewProjectile(geometry.Vec{Y: -2}, 0.5, 0, player, testProjectileConfig())

	score := 0
	if got := p.Collide(&score); got != Dodged {
		t.Errorf("Collide() within radius of target = %v, expected dodged", got)
	}
	if score != 10 {
		t.Errorf("score = %d, expected 10", score)
	}
}

func TestProjectileHitsPlayerWithoutScore(t *testing.T) {
	player := testPlayer()
	p := NewProjectile(geometry.Vec{Y: -300}, 0.5, 0, player, testProjectileConfig())
	player.Pos = geometry.Vec{X: 100}
	p.Pos = geometry.Vec{X: 104}

	score := 0
	if got := p.Collide(&score); got != Hit {
		t.Fatalf("Collide() = %v, expected hit", got)
	}
	if score != 0 {
		t.Errorf("score = %d, expected 0 for a hit", score)
	}
}

func TestProjectileExpiryBeatsContact(t *testing.T) {
	player := testPlayer()
	p := NewProjectile(geometry.Vec{Y: -300}, 0.5, 0, player, testProjectileConfig())
	player.Pos = geometry.Vec{X: 100}
	p.Pos = geometry.Vec{X: 104}
	p.Age = p.Lifetime + 0.001

	score := 0
	if got := p.Collide(&score); got != Dodged {
		t.Fatalf("Collide() = %v, expected dodged", got)
	}
	if score != 10 {
		t.Errorf("score = %d, expected 10", score)
	}
}

func TestProjectileCollideIdempotent(t *testing.T) {
	player := testPlayer()
	p := NewProjectile(geometry.Vec{Y: -1}, 0.5, 0, player, testProjectileConfig())

	score := 0
	p.Collide(&score)
	for i := 0; i < 3; i++ {
		if got := p.Collide(&score); got != Gone {
			t.Errorf("repeat Collide() = %v, expected gone", got)
		}
	}
	if score != 10 || !p.Destroy {
		t.Errorf("score = %d destroy = %v, expected 10 and true", score, p.Destroy)
	}

	before := p.Pos
	p.Advance(1)
	if p.Pos != before {
		t.Error("destroyed projectile should not move")
	}
}
