package aquarium

import (
	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/config"
	"github.com/pthm-cable/fishbowl/systems"
)

// Player is the user-controlled creature.
type Player struct {
	Pos    components.Position
	Mot    components.Motion
	Bounds components.Bounds
	Body   components.Body
	Look   components.Appearance

	lives    int
	power    int
	score    int // creatures eaten
	points   int // sum of eaten creature values
	debounce int // frames left of damage immunity
	scale    float64
}

// NewPlayer creates a player with 3 lives and power 1.
func NewPlayer(x, y float64, speed int, radius float64, sprite components.Sprite) *Player {
	return &Player{
		Pos:   components.Position{X: x, Y: y},
		Mot:   components.Motion{Speed: speed},
		Body:  components.Body{Radius: radius},
		Look:  components.Appearance{Sprite: sprite},
		lives: 3,
		power: 1,
		scale: 1,
	}
}

// NewPlayerFromConfig creates a player from the player section of cfg.
func NewPlayerFromConfig(cfg *config.Config, sprite components.Sprite) *Player {
	pc := cfg.Player
	p := NewPlayer(pc.StartX, pc.StartY, pc.Speed, pc.Radius, sprite)
	p.lives = pc.Lives
	p.power = pc.Power
	return p
}

// X returns the player's x position.
func (p *Player) X() float64 { return p.Pos.X }

// Y returns the player's y position.
func (p *Player) Y() float64 { return p.Pos.Y }

// Radius returns the collision radius.
func (p *Player) Radius() float64 { return p.Body.Radius }

// Lives returns the remaining lives.
func (p *Player) Lives() int { return p.lives }

// Power returns the player's eating power.
func (p *Player) Power() int { return p.power }

// Score returns the number of creatures eaten.
func (p *Player) Score() int { return p.score }

// Points returns the summed value of creatures eaten.
func (p *Player) Points() int { return p.points }

// DamageDebounce returns the frames left before the player can be hurt again.
func (p *Player) DamageDebounce() int { return p.debounce }

// VisualScale returns the draw scale after growth power-ups.
func (p *Player) VisualScale() float64 { return p.scale }

// SetBounds sets the box the player bounces inside.
func (p *Player) SetBounds(b components.Bounds) {
	p.Bounds = b
}

// SetDirection sets the normalized movement direction.
func (p *Player) SetDirection(dx, dy float64) {
	systems.SetDirection(&p.Mot, dx, dy)
}

// ChangeSpeed sets the movement speed.
func (p *Player) ChangeSpeed(speed int) {
	p.Mot.Speed = speed
}

// Move advances the player one tick and bounces off the bounds.
func (p *Player) Move() {
	systems.Step(&p.Pos, &p.Mot, p.Bounds, 1)
}

// ReduceDamageDebounce counts the damage immunity down by one frame.
func (p *Player) ReduceDamageDebounce() {
	if p.debounce > 0 {
		p.debounce--
	}
}

// Update decays damage immunity, then moves.
func (p *Player) Update() {
	p.ReduceDamageDebounce()
	p.Move()
}

// LoseLife takes one life and starts debounce frames of immunity.
// It does nothing while immunity is active and reports whether a life was lost.
func (p *Player) LoseLife(debounce int) bool {
	if p.debounce > 0 {
		return false
	}
	lost := false
	if p.lives > 0 {
		p.lives--
		lost = true
	}
	p.debounce = debounce
	return lost
}

// AddToScore counts amount eaten creatures worth weight each.
func (p *Player) AddToScore(amount, weight int) {
	p.score += amount
	p.points += amount * weight
}

// IncreasePower raises the eating power.
func (p *Player) IncreasePower(n int) {
	p.power += n
}

// Grow multiplies both the draw scale and the collision radius by factor.
func (p *Player) Grow(factor float64) {
	p.scale *= factor
	p.Body.Radius *= factor
}

// Draw renders the player, tinted while immune to damage.
func (p *Player) Draw() {
	if p.Look.Sprite == nil {
		return
	}
	p.Look.Sprite.Draw(p.Pos.X, p.Pos.Y, components.DrawOptions{
		Flipped: p.Look.Flipped,
		Scale:   p.scale,
		Damaged: p.debounce > 0,
	})
}
