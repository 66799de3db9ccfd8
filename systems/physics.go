// Package systems contains movement and collision systems for the aquarium.
package systems

import (
	"math"

	"github.com/pthm-cable/fishbowl/components"
)

// Step advances pos along the motion direction by speed*mul, then bounces.
func Step(pos *components.Position, mot *components.Motion, b components.Bounds, mul float64) {
	speed := float64(mot.Speed) * mul
	pos.X += mot.DX * speed
	pos.Y += mot.DY * speed
	Bounce(pos, mot, b)
}

// Bounce keeps pos inside [0, MaxX] x [0, MaxY].
// An axis that left the box is clamped to the edge and its direction
// component reflected to point back inside.
func Bounce(pos *components.Position, mot *components.Motion, b components.Bounds) {
	if pos.X < 0 {
		pos.X = 0
		mot.DX = math.Abs(mot.DX)
	} else if pos.X > b.MaxX {
		pos.X = math.Max(b.MaxX, 0)
		mot.DX = -math.Abs(mot.DX)
	}

	if pos.Y < 0 {
		pos.Y = 0
		mot.DY = math.Abs(mot.DY)
	} else if pos.Y > b.MaxY {
		pos.Y = math.Max(b.MaxY, 0)
		mot.DY = -math.Abs(mot.DY)
	}
}
