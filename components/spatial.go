package components

// Position represents a creature's position in the aquarium.
// Same layout as gonum's r2.Vec so the two convert directly.
type Position struct {
	X, Y float64
}

// Motion holds the movement direction and speed.
// (DX, DY) is unit length or zero after every SetDirection.
type Motion struct {
	DX, DY float64
	Speed  int
}

// Bounds is the box a creature bounces inside: [0, MaxX] x [0, MaxY].
type Bounds struct {
	MaxX, MaxY float64
}
