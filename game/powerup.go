package game

import (
	"github.com/pthm-cable/fishbowl/aquarium"
	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/systems"
	"github.com/pthm-cable/fishbowl/telemetry"
)

// watchBigFish arms the growth power-up on the first frame a bigger fish is
// alive and spawns it once the configured delay has passed. It fires once per
// session.
func (s *Scene) watchBigFish() {
	if !s.bigFishSeen && s.aq.HasKind(components.KindBigger) {
		s.bigFishSeen = true
		s.bigFishFrames = 0
	}
	if !s.bigFishSeen || s.powerUpSpawned {
		return
	}

	s.bigFishFrames++
	pc := s.cfg.PowerUp
	if s.bigFishFrames <= pc.DelayFrames {
		return
	}

	x := systems.Clamp(s.player.X()+pc.OffsetX, pc.Margin, float64(s.aq.Width())-pc.Margin)
	y := systems.Clamp(s.player.Y()+pc.OffsetY, pc.Margin, float64(s.aq.Height())-pc.Margin)
	s.aq.AddPowerUp(aquarium.NewPowerUp(x, y, pc.Radius, s.powerUpSprite))
	s.powerUpSpawned = true
	s.collector.Record(telemetry.NewPowerUpSpawnEvent(s.tick))
	s.log.Info("power-up spawned", "x", x, "y", y, "frames_after_sighting", s.bigFishFrames)
}
