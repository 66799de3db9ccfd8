package systems

import (
	"math"

	"github.com/pthm-cable/fishbowl/components"
)

// Swimmer bundles the components a mover reads and writes.
// Bob and Dash are nil for kinds that don't carry them.
type Swimmer struct {
	Kind   components.Kind
	Pos    *components.Position
	Mot    *components.Motion
	Bounds components.Bounds
	Look   *components.Appearance
	Bob    *components.Bob
	Dash   *components.Dash
}

// Mover advances one creature by a single tick.
type Mover func(t *Tuning, rng RNG, s Swimmer)

// Movers maps each NPC kind to its movement behavior.
var Movers = map[components.Kind]Mover{
	components.KindBase:   MoveWanderer,
	components.KindBigger: MoveWanderer,
	components.KindPink:   MovePink,
	components.KindShark:  MoveShark,
}

// Move dispatches to the mover for s.Kind. Unknown kinds stay put.
func Move(t *Tuning, rng RNG, s Swimmer) {
	if m, ok := Movers[s.Kind]; ok {
		m(t, rng, s)
	}
}

func faceDirection(s Swimmer) {
	if s.Look != nil {
		s.Look.Flipped = s.Mot.DX < 0
	}
}

// MoveWanderer moves in a straight line at the kind's speed multiplier.
func MoveWanderer(t *Tuning, _ RNG, s Swimmer) {
	speed := float64(s.Mot.Speed) * t.SpeedMul[s.Kind]
	s.Pos.X += s.Mot.DX * speed
	s.Pos.Y += s.Mot.DY * speed
	faceDirection(s)
	Bounce(s.Pos, s.Mot, s.Bounds)
}

// MovePink swims horizontally while bobbing on a sine wave.
func MovePink(t *Tuning, _ RNG, s Swimmer) {
	p := t.Pink
	var phase float64
	if s.Bob != nil {
		s.Bob.Phase += p.PhaseStep
		phase = s.Bob.Phase
	}
	sinY := math.Sin(phase) * p.Amplitude
	speed := float64(s.Mot.Speed)

	s.Pos.X += s.Mot.DX * speed
	s.Pos.Y += (s.Mot.DY + sinY) * p.VerticalScale * speed

	faceDirection(s)
	Bounce(s.Pos, s.Mot, s.Bounds)
}

// MoveShark cruises with a slow vertical drift and periodically dashes.
// Drift is frozen while dashing.
func MoveShark(t *Tuning, rng RNG, s Swimmer) {
	st := t.Shark
	faceDirection(s)

	mul := st.CruiseMul
	if s.Dash != nil && s.Dash.DashFrames > 0 {
		mul = st.DashMul
		s.Dash.DashFrames--
	} else {
		if s.Dash != nil {
			if s.Dash.CooldownFrames > 0 {
				s.Dash.CooldownFrames--
			} else if rng.Intn(100) < st.DashChance {
				s.Dash.DashFrames = st.DashFrames
				s.Dash.CooldownFrames = st.CooldownMin + intn(rng, st.CooldownJitter)
			}
		}

		dy := s.Mot.DY + randomAxis(rng)*st.Drift
		dy = Clamp(dy, -st.MaxDY, st.MaxDY)
		SetDirection(s.Mot, s.Mot.DX, dy)
	}

	Step(s.Pos, s.Mot, s.Bounds, mul)
}

// InitShark sets a fresh shark heading left or right with its first cooldown.
func InitShark(t *Tuning, rng RNG, mot *components.Motion, dash *components.Dash) {
	dx := 1.0
	if rng.Intn(2) != 0 {
		dx = -1
	}
	SetDirection(mot, dx, 0)
	dash.DashFrames = 0
	dash.CooldownFrames = t.Shark.InitialCooldownMin + intn(rng, t.Shark.InitialCooldownJit)
}
