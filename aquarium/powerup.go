package aquarium

import "github.com/pthm-cable/fishbowl/components"

// PowerUp is a static collectible. Its identity is its pointer.
type PowerUp struct {
	X, Y   float64
	Radius float64
	Sprite components.Sprite
}

// NewPowerUp creates a power-up at (x, y).
func NewPowerUp(x, y, radius float64, sprite components.Sprite) *PowerUp {
	return &PowerUp{X: x, Y: y, Radius: radius, Sprite: sprite}
}

// Draw renders the power-up; the sprite is anchored at its top-left corner.
func (p *PowerUp) Draw() {
	if p.Sprite != nil {
		p.Sprite.Draw(p.X, p.Y, components.DrawOptions{})
	}
}

// AddPowerUp registers a power-up. Nil is ignored.
func (a *Aquarium) AddPowerUp(p *PowerUp) {
	if p == nil {
		return
	}
	a.powerUps = append(a.powerUps, p)
}

// PowerUpCount returns the number of active power-ups.
func (a *Aquarium) PowerUpCount() int {
	return len(a.powerUps)
}

// PowerUpAt returns the i-th power-up, or nil when out of range.
func (a *Aquarium) PowerUpAt(i int) *PowerUp {
	if i < 0 || i >= len(a.powerUps) {
		return nil
	}
	return a.powerUps[i]
}

// RemovePowerUp removes p. Unknown power-ups are ignored.
func (a *Aquarium) RemovePowerUp(p *PowerUp) {
	for i, q := range a.powerUps {
		if q == p {
			a.powerUps = append(a.powerUps[:i], a.powerUps[i+1:]...)
			return
		}
	}
}
