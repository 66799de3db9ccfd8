package aquarium

import "github.com/pthm-cable/fishbowl/systems"

// DetectCollisions returns a collision event for the first creature, in spawn
// order, whose circle touches the player's, or nil.
func DetectCollisions(a *Aquarium, p *Player) *Event {
	if a == nil || p == nil {
		return nil
	}
	for _, e := range a.creatures {
		pos, _, _, body, _, _ := a.mapper.Get(e)
		if systems.CirclesOverlap(p.Pos, p.Body.Radius, *pos, body.Radius) {
			return NewCollisionEvent(p, e)
		}
	}
	return nil
}

// PowerUpTouches reports whether the player picks up pu.
//
// Both circles are measured from their top-left anchor offset by their own
// radius rather than from the true centers. Gameplay tuning depends on this
// exact test, so it is kept as is.
func PowerUpTouches(p *Player, pu *PowerUp) bool {
	if p == nil || pu == nil {
		return false
	}
	r := p.Body.Radius
	px := p.Pos.X + r
	py := p.Pos.Y + r
	qx := pu.X + pu.Radius
	qy := pu.Y + pu.Radius

	dx := px - qx
	dy := py - qy
	rr := r + pu.Radius
	return dx*dx+dy*dy <= rr*rr
}
