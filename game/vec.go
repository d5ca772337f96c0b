package game

import "math"

// Epsilon is the minimum distance used wherever a division by a vector
// length could otherwise produce NaN velocities.
const Epsilon = 1e-6

type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Length() float64     { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Length() }

// Normalize returns a unit vector; a near-zero input falls back to a fixed
// horizontal axis instead of dividing by zero.
func (v Vec) Normalize() Vec {
	l := v.Length()
	if l < Epsilon {
		return Vec{1, 0}
	}
	return v.Scale(1 / l)
}

// Reflect mirrors v about the plane with unit normal n.
func (v Vec) Reflect(n Vec) Vec {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
