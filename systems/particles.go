package systems

import "math"

// ParticleType identifies the type of effect particle.
type ParticleType uint8

const (
	ParticleBubble  ParticleType = iota // eaten creature
	ParticleHit                         // player hurt
	ParticleSparkle                     // power-up collected
)

// EffectParticle represents a visual feedback particle.
type EffectParticle struct {
	X, Y       float64
	VelX, VelY float64
	Life       int32
	MaxLife    int32
	Type       ParticleType
	Size       float64
}

// ParticleSystem manages effect particles for visual feedback.
type ParticleSystem struct {
	Particles    []EffectParticle
	maxParticles int
	rng          RNG
}

// NewParticleSystem creates a particle system capped at maxParticles live particles.
func NewParticleSystem(rng RNG, maxParticles int) *ParticleSystem {
	if maxParticles < 1 {
		maxParticles = 500
	}
	return &ParticleSystem{
		Particles:    make([]EffectParticle, 0, maxParticles),
		maxParticles: maxParticles,
		rng:          rng,
	}
}

// Update processes all particles.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case ParticleBubble:
			// Float upward
			p.VelY -= 0.03
		case ParticleHit:
			// Sink downward
			p.VelY += 0.02
		}

		// Drag
		p.VelX *= 0.95
		p.VelY *= 0.95

		p.X += p.VelX
		p.Y += p.VelY

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// EmitBubbles emits a small rising burst where a creature was eaten.
// Bigger meals make more bubbles.
func (s *ParticleSystem) EmitBubbles(x, y float64, value int) {
	count := 3 + 2*value
	if count > 20 {
		count = 20
	}
	for i := 0; i < count; i++ {
		s.emit(x, y, ParticleBubble)
	}
}

// EmitHit emits a burst of hit particles around the player.
func (s *ParticleSystem) EmitHit(x, y float64) {
	for i := 0; i < 10; i++ {
		s.emit(x, y, ParticleHit)
	}
}

// EmitSparkle emits a radial ring for a collected power-up.
func (s *ParticleSystem) EmitSparkle(x, y float64) {
	for i := 0; i < 16; i++ {
		s.emit(x, y, ParticleSparkle)
	}
}

func (s *ParticleSystem) emit(x, y float64, ptype ParticleType) {
	if len(s.Particles) >= s.maxParticles {
		return
	}

	var velX, velY float64
	var life int32
	var size float64

	switch ptype {
	case ParticleBubble:
		velX = (s.rng.Float64() - 0.5) * 0.6
		velY = -s.rng.Float64() * 0.5
		life = int32(40 + intn(s.rng, 30))
		size = 2 + s.rng.Float64()*2
	case ParticleHit:
		velX = (s.rng.Float64() - 0.5) * 2
		velY = (s.rng.Float64() - 0.5) * 2
		life = int32(20 + intn(s.rng, 20))
		size = 2 + s.rng.Float64()
	default:
		// Radial burst
		angle := s.rng.Float64() * 2 * math.Pi
		speed := 0.8 + s.rng.Float64()*0.8
		velX = math.Cos(angle) * speed
		velY = math.Sin(angle) * speed
		life = int32(30 + intn(s.rng, 30))
		size = 2 + s.rng.Float64()*1.5
	}

	s.Particles = append(s.Particles, EffectParticle{
		X:       x + (s.rng.Float64()-0.5)*6,
		Y:       y + (s.rng.Float64()-0.5)*6,
		VelX:    velX,
		VelY:    velY,
		Life:    life,
		MaxLife: life,
		Type:    ptype,
		Size:    size,
	})
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// Clear removes every particle.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}
