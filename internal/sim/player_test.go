package sim

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/geometry"
)

func testPlayer() *Player {
	return NewPlayer(config.PlayerConfig{Speed: 200, Radius: 10, Friction: 0.9, RadiusLimit: 200})
}

func TestPlayerMovesAlongHeldDirection(t *testing.T) {
	p := testPlayer()
	p.HandleInput(Right, true)
	p.Advance(0.1)

	if math.Abs(p.Pos.X-20) > 1e-9 || p.Pos.Y != 0 {
		t.Errorf("Pos = %+v, expected (20, 0)", p.Pos)
	}
	if math.Abs(p.Accel.X-0.9) > 1e-9 {
		t.Errorf("Accel.X = %v, expected friction-damped 0.9", p.Accel.X)
	}

	p.HandleInput(Right, false)
	p.Advance(0.1)
	if math.Abs(p.Accel.X-0.81) > 1e-9 {
		t.Errorf("released Accel.X = %v, expected 0.81", p.Accel.X)
	}
}

func TestPlayerOppositeKeysMostRecentWins(t *testing.T) {
	tests := []struct {
		name     string
		presses  []Direction
		expected geometry.Vec
	}{
		{"left then right", []Direction{Left, Right}, geometry.Vec{X: 1}},
		{"right then left", []Direction{Right, Left}, geometry.Vec{X: -1}},
		{"up then down", []Direction{Up, Down}, geometry.Vec{Y: 1}},
		{"down then up", []Direction{Down, Up}, geometry.Vec{Y: -1}},
		{"diagonal", []Direction{Up, Right}, geometry.Vec{X: 1, Y: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testPlayer()
			p.Friction = 1
			for _, d := range tc.presses {
				p.HandleInput(d, true)
			}
			p.Advance(0.01)
			if p.Accel != tc.expected {
				t.Errorf("Accel = %+v, expected %+v", p.Accel, tc.expected)
			}
		})
	}
}

func TestPlayerRepressKeepsOrder(t *testing.T) {
	p := testPlayer()
	p.Friction = 1
	p.HandleInput(Left, true)
	p.HandleInput(Right, true)
	p.HandleInput(Left, true) // still held, not a new press
	p.Advance(0.01)
	if p.Accel.X != 1 {
		t.Errorf("Accel.X = %v, expected 1", p.Accel.X)
	}
}

func TestPlayerBoundaryClampAndLockout(t *testing.T) {
	p := testPlayer()
	p.Pos = geometry.Vec{X: 195}
	p.HandleInput(Right, true)
	p.Advance(0.1)

	if p.Pos.X != 195 {
		t.Errorf("Pos.X = %v, expected step rejected at 195", p.Pos.X)
	}
	if math.Abs(p.Accel.X+0.9) > 1e-9 || p.Accel.Y != 0 {
		t.Errorf("Accel = %+v, expected (-0.9, 0) toward centre", p.Accel)
	}
	if p.Held(Right) {
		t.Error("held directions should be cleared on clamp")
	}
	if !p.Locked() {
		t.Fatal("player should be locked out")
	}

	p.HandleInput(Right, true)
	if p.Held(Right) {
		t.Error("input must be ignored while locked out")
	}

	p.Advance(0.05)
	if !p.Locked() {
		t.Error("lockout should last 0.1s")
	}
	if p.Pos.X >= 195 {
		t.Errorf("Pos.X = %v, expected drift back toward centre", p.Pos.X)
	}

	p.Advance(0.06)
	if p.Locked() {
		t.Error("lockout should have expired")
	}
	p.HandleInput(Right, true)
	if !p.Held(Right) {
		t.Error("input should be accepted after lockout")
	}
}

func TestPlayerPressOrderSurvivesLockout(t *testing.T) {
	p := testPlayer()
	p.Pos = geometry.Vec{Y: 195}
	p.HandleInput(Right, true)
	p.HandleInput(Left, true)
	p.HandleInput(Down, true)
	p.Advance(0.1)
	if !p.Locked() {
		t.Fatal("expected the step into the boundary to lock the player out")
	}

	p.HandleInput(Down, false)
	p.Advance(0.11)
	if p.Locked() {
		t.Fatal("lockout should have expired")
	}

	// Keys still down are reported again in arbitrary order.
	p.HandleInput(Right, true)
	p.HandleInput(Left, true)
	p.Advance(0.01)
	if math.Abs(p.Accel.X+0.9) > 1e-9 {
		t.Errorf("Accel.X = %v, expected -0.9: left was pressed last", p.Accel.X)
	}
	if p.Held(Down) {
		t.Error("a key released during the lockout must stay released")
	}
}

func TestPlayerClampAtOriginStaysFinite(t *testing.T) {
	p := testPlayer()
	p.HandleInput(Down, true)
	p.Advance(100)

	if p.Pos != (geometry.Vec{}) {
		t.Errorf("Pos = %+v, expected origin", p.Pos)
	}
	if math.IsNaN(p.Accel.X) || math.IsNaN(p.Accel.Y) {
		t.Errorf("Accel = %+v contains NaN", p.Accel)
	}
}

func TestPlayerNeverLeavesArena(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	dirs := []Direction{Up, Down, Left, Right}

	for trial := 0; trial < 200; trial++ {
		p := testPlayer()
		p.Pos = geometry.Polar(rng.Float64()*p.RadiusLimit*0.99, rng.Float64()*2*math.Pi)
		for step := 0; step < 200; step++ {
			d := dirs[rng.IntN(len(dirs))]
			p.HandleInput(d, rng.IntN(3) > 0)
			p.Advance(rng.Float64() * 0.5)
			if p.Pos.Len() >= p.RadiusLimit {
				t.Fatalf("trial %d step %d: |pos| = %v reached limit %v", trial, step, p.Pos.Len(), p.RadiusLimit)
			}
		}
	}
}

func TestPlayerBodyShadowPointsOutward(t *testing.T) {
	p := testPlayer()
	p.Pos = geometry.Vec{X: -50}
	b := p.Body()
	if b.Shadow != (geometry.Vec{X: -ShadowDistance}) {
		t.Errorf("Shadow = %+v, expected (-%d, 0)", b.Shadow, ShadowDistance)
	}
	if b.Radius != 10 {
		t.Errorf("Radius = %v, expected 10", b.Radius)
	}
}
