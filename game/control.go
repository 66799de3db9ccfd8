package game

import (
	"math"

	"github.com/pthm-cable/fishbowl/systems"
)

// FrameControl runs the simulation step once every N frames.
type FrameControl struct {
	every int
	frame int
}

// NewFrameControl creates a controller that ticks every n frames (minimum 1).
func NewFrameControl(n int) *FrameControl {
	if n < 1 {
		n = 1
	}
	return &FrameControl{every: n}
}

// Tick counts a frame and reports whether the step should run on it.
func (f *FrameControl) Tick() bool {
	f.frame++
	if f.frame >= f.every {
		f.frame = 0
		return true
	}
	return false
}

// Autopilot steers the player for headless runs: it chases the nearest fish
// it can eat, flees fish that can hurt it and wanders otherwise.
type Autopilot struct {
	scene *Scene
	rng   systems.RNG

	FleeMargin   float64 // extra distance beyond touching at which threats are avoided
	WanderFrames int     // frames between wander direction changes

	wanderDX, wanderDY float64
	wanderLeft         int
}

// NewAutopilot creates an autopilot that reads the scene's aquarium and player.
func NewAutopilot(s *Scene, rng systems.RNG) *Autopilot {
	return &Autopilot{
		scene:        s,
		rng:          rng,
		FleeMargin:   80,
		WanderFrames: 90,
	}
}

// Direction implements InputProvider.
func (a *Autopilot) Direction() (float64, float64) {
	p := a.scene.Player()
	aq := a.scene.Aquarium()
	if p == nil || aq == nil {
		return 0, 0
	}

	preyDist, threatDist := math.Inf(1), math.Inf(1)
	var preyX, preyY, threatX, threatY float64
	var threatReach float64

	for _, c := range aq.Creatures() {
		dx, dy := c.X-p.X(), c.Y-p.Y()
		d := math.Hypot(dx, dy)
		if c.Value <= p.Power() {
			if d < preyDist {
				preyDist, preyX, preyY = d, dx, dy
			}
			continue
		}
		if d < threatDist {
			threatDist, threatX, threatY = d, dx, dy
			threatReach = c.Radius + p.Radius() + a.FleeMargin
		}
	}

	// Immune frames are spent feeding
	if threatDist < threatReach && p.DamageDebounce() == 0 {
		return systems.UnitDirection(-threatX, -threatY)
	}
	if !math.IsInf(preyDist, 1) {
		return systems.UnitDirection(preyX, preyY)
	}

	if a.wanderLeft <= 0 {
		a.wanderDX, a.wanderDY = systems.RandomDirection(a.rng)
		a.wanderLeft = a.WanderFrames
	}
	a.wanderLeft--
	return a.wanderDX, a.wanderDY
}
