package game

import (
	"math"

	"golang.org/x/image/math/f64"
)

// vec builds an f64.Vec2; index 0 is x, index 1 is y (y grows upward).
func vec(x, y float64) f64.Vec2 {
	return f64.Vec2{x, y}
}

func add(a, b f64.Vec2) f64.Vec2 {
	return f64.Vec2{a[0] + b[0], a[1] + b[1]}
}

func sub(a, b f64.Vec2) f64.Vec2 {
	return f64.Vec2{a[0] - b[0], a[1] - b[1]}
}

func scale(a f64.Vec2, k float64) f64.Vec2 {
	return f64.Vec2{a[0] * k, a[1] * k}
}

func length(a f64.Vec2) float64 {
	return math.Hypot(a[0], a[1])
}

func dist(a, b f64.Vec2) float64 {
	return length(sub(a, b))
}

func dot(a, b f64.Vec2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// normalize returns the unit vector of a, or the zero vector when a is
// (nearly) zero.
func normalize(a f64.Vec2) f64.Vec2 {
	l := length(a)
	if l < 1e-9 {
		return f64.Vec2{}
	}
	return f64.Vec2{a[0] / l, a[1] / l}
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

func half(size f64.Vec2) f64.Vec2 {
	return scale(size, 0.5)
}
