package geometry

import "math"

// Vec is a 2D point or direction in canvas-centred coordinates (y grows downward).
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }

// Polar converts a radius and angle to a Cartesian offset.
func Polar(r, angle float64) Vec { return Vec{math.Cos(angle) * r, math.Sin(angle) * r} }

// Unit returns v scaled to length 1. A zero or non-finite vector yields the zero
// vector so degenerate distances never leak NaN into positions.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Toward is the unit direction from v to target, zero when they coincide.
func (v Vec) Toward(target Vec) Vec {
	return target.Sub(v).Unit()
}
