package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishbowl/systems"
)

// ParticleRenderer renders effect particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw(particles []systems.EffectParticle) {
	for i := range particles {
		p := &particles[i]

		// Fade with remaining life
		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		var color rl.Color
		switch p.Type {
		case systems.ParticleBubble:
			color = rl.Color{R: 200, G: 230, B: 255, A: uint8(lifeRatio * 180)}
		case systems.ParticleHit:
			color = rl.Color{R: 230, G: 60, B: 60, A: uint8(lifeRatio * 200)}
		case systems.ParticleSparkle:
			color = rl.Color{R: 255, G: 220, B: 80, A: uint8(lifeRatio * 220)}
		}

		size := float32(p.Size) * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		if p.Type == systems.ParticleBubble {
			rl.DrawCircleLines(int32(p.X), int32(p.Y), size, color)
			continue
		}
		rl.DrawCircle(int32(p.X), int32(p.Y), size, color)
	}
}
