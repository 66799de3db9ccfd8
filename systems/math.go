package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishbowl/components"
)

// RNG is the random source the simulation draws from.
// *math/rand.Rand satisfies it; tests substitute scripted sources.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// vec converts a position to a gonum vector.
func vec(p components.Position) r2.Vec {
	return r2.Vec(p)
}

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// UnitDirection normalizes (dx, dy). The zero vector stays zero.
func UnitDirection(dx, dy float64) (float64, float64) {
	v := r2.Vec{X: dx, Y: dy}
	if r2.Norm2(v) == 0 {
		return 0, 0
	}
	u := r2.Unit(v)
	return u.X, u.Y
}

// SetDirection assigns a normalized direction to m.
func SetDirection(m *components.Motion, dx, dy float64) {
	m.DX, m.DY = UnitDirection(dx, dy)
}

// DistanceSq returns the squared distance between two points.
func DistanceSq(a, b components.Position) float64 {
	return r2.Norm2(r2.Sub(vec(a), vec(b)))
}

// CirclesOverlap reports whether two circles touch or overlap.
// The boundary is inclusive: d² == (ra+rb)² counts.
func CirclesOverlap(a components.Position, ra float64, b components.Position, rb float64) bool {
	sum := ra + rb
	return DistanceSq(a, b) <= sum*sum
}

// randomAxis returns -1, 0 or 1.
func randomAxis(rng RNG) float64 {
	return float64(rng.Intn(3) - 1)
}

// RandomDirection picks each axis from {-1, 0, 1} and normalizes.
// Both axes may come up zero, leaving the creature stationary.
func RandomDirection(rng RNG) (float64, float64) {
	dx := randomAxis(rng)
	dy := randomAxis(rng)
	return UnitDirection(dx, dy)
}
