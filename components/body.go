package components

// Body holds collision geometry.
type Body struct {
	Radius float64
}

// DrawOptions controls how a sprite is drawn.
type DrawOptions struct {
	Flipped bool
	Scale   float64 // 0 is treated as 1
	Damaged bool    // flash while the player is invulnerable
}

// Sprite is a drawable image handle shared between creatures of one kind.
// Implementations must not mutate simulation state.
type Sprite interface {
	Draw(x, y float64, opts DrawOptions)
}

// Appearance links a creature to its shared sprite and its own flip state.
type Appearance struct {
	Sprite  Sprite
	Flipped bool
}
