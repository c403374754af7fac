package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/control"
	"github.com/iburimskiy/audio-dodge/internal/sim"
)

const volumeStep = 0.1

// moveKeys binds arrows and WASD. Two keys may share a direction.
var moveKeys = []struct {
	key ebiten.Key
	dir sim.Direction
}{
	{ebiten.KeyArrowUp, sim.Up},
	{ebiten.KeyW, sim.Up},
	{ebiten.KeyArrowDown, sim.Down},
	{ebiten.KeyS, sim.Down},
	{ebiten.KeyArrowLeft, sim.Left},
	{ebiten.KeyA, sim.Left},
	{ebiten.KeyArrowRight, sim.Right},
	{ebiten.KeyD, sim.Right},
}

// toggleKeys follow control.ToggleFields order.
var toggleKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type keyPredicate func(ebiten.Key) bool

type movement struct {
	dir  sim.Direction
	down bool
}

// movements reports held directions every tick, so a direction dropped by the
// boundary lockout is picked up again while its key stays down. A release is
// reported only once no key for that direction is held.
func movements(pressed, released keyPredicate) []movement {
	var held, let [4]bool
	for _, b := range moveKeys {
		if pressed(b.key) {
			held[b.dir] = true
		} else if released(b.key) {
			let[b.dir] = true
		}
	}
	var out []movement
	for d := sim.Up; d <= sim.Right; d++ {
		switch {
		case held[d]:
			out = append(out, movement{d, true})
		case let[d]:
			out = append(out, movement{d, false})
		}
	}
	return out
}

// settings is the read side the key bindings need to compute relative changes.
type settings interface {
	Volume() float64
	Distortion() (config.Distortion, float64)
}

// commands maps just-pressed keys to staged changes. The file dialog and quit
// keys are handled by the Game itself.
func commands(justPressed keyPredicate, s settings, params config.DrawParams) []control.Change {
	var out []control.Change
	for i, k := range toggleKeys {
		if i < len(control.ToggleFields) && justPressed(k) {
			out = append(out, control.Change{Field: control.ToggleFields[i], Value: control.Flip})
		}
	}
	if justPressed(ebiten.KeySpace) {
		out = append(out, control.Change{Field: control.Playing, Value: control.Flip})
	}
	if justPressed(ebiten.KeyC) {
		out = append(out, control.Change{Field: control.ClearProjectiles})
	}
	if justPressed(ebiten.KeyEqual) || justPressed(ebiten.KeyNumpadAdd) {
		out = append(out, control.Change{Field: control.Volume, Value: s.Volume() + volumeStep})
	}
	if justPressed(ebiten.KeyMinus) || justPressed(ebiten.KeyNumpadSubtract) {
		out = append(out, control.Change{Field: control.Volume, Value: max(0, s.Volume()-volumeStep)})
	}
	if justPressed(ebiten.KeyX) {
		kind, _ := s.Distortion()
		out = append(out, control.Change{Field: control.Distortion, Value: nextDistortion(kind)})
	}
	if justPressed(ebiten.KeyBracketLeft) && params.RingCount > 0 {
		out = append(out, control.Change{Field: control.RingCount, Value: params.RingCount - 1})
	}
	if justPressed(ebiten.KeyBracketRight) {
		out = append(out, control.Change{Field: control.RingCount, Value: params.RingCount + 1})
	}
	return out
}

func nextDistortion(k config.Distortion) config.Distortion {
	for i, d := range config.Distortions {
		if d == k {
			return config.Distortions[(i+1)%len(config.Distortions)]
		}
	}
	return config.Distortions[0]
}
