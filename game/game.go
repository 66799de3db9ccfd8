// Package game runs a session: the player, the aquarium and the per-frame
// rules that connect them.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/fishbowl/aquarium"
	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/config"
	"github.com/pthm-cable/fishbowl/level"
	"github.com/pthm-cable/fishbowl/systems"
	"github.com/pthm-cable/fishbowl/telemetry"
)

// InputProvider supplies the player's steering each frame.
type InputProvider interface {
	Direction() (dx, dy float64)
}

// UpdateController decides on which frames the simulation step runs.
type UpdateController interface {
	Tick() bool
}

// Options configures a Scene.
type Options struct {
	Seed    int64       // 0 = time-based
	RNG     systems.RNG // overrides Seed when set
	Input   InputProvider
	Control UpdateController // nil = every cfg.Sim.UpdateEvery frames

	Sprites       aquarium.SpriteProvider
	PlayerSprite  components.Sprite
	PowerUpSprite components.Sprite

	Logger         *slog.Logger // nil = slog.Default()
	LogStats       bool
	StatsWindowSec float64 // 0 = cfg.Telemetry.StatsWindow
	OutputDir      string  // empty = no CSV output
	StatsCallback  func(telemetry.WindowStats)
}

// Scene holds the complete session state.
type Scene struct {
	cfg     *config.Config
	rng     systems.RNG
	log     *slog.Logger
	input   InputProvider
	control UpdateController

	sprites       aquarium.SpriteProvider
	playerSprite  components.Sprite
	powerUpSprite components.Sprite

	aq      *aquarium.Aquarium
	player  *aquarium.Player
	effects *systems.ParticleSystem

	// State
	tick      int32
	halted    bool
	lastEvent *aquarium.Event

	// One-shot growth power-up, armed by the first bigger fish sighting
	bigFishSeen    bool
	bigFishFrames  int
	powerUpSpawned bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	milestones    *telemetry.MilestoneDetector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewScene creates a session from cfg with a populated first level.
func NewScene(cfg *config.Config, opts Options) (*Scene, error) {
	rng := opts.RNG
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	control := opts.Control
	if control == nil {
		control = NewFrameControl(cfg.Sim.UpdateEvery)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	s := &Scene{
		cfg:           cfg,
		rng:           rng,
		log:           logger,
		input:         opts.Input,
		control:       control,
		sprites:       opts.Sprites,
		playerSprite:  opts.PlayerSprite,
		powerUpSprite: opts.PowerUpSprite,
		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		milestones:    telemetry.NewMilestoneDetector(cfg.Telemetry.MilestoneHistory),
		// Effects draw from their own stream
		effects:       systems.NewParticleSystem(rand.New(rand.NewSource(int64(rng.Intn(math.MaxInt32)))), 500),
		outputManager: om,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	if err := s.reset(); err != nil {
		om.Close()
		return nil, err
	}
	return s, nil
}

// reset builds a fresh aquarium and player.
func (s *Scene) reset() error {
	levels, err := level.FromConfig(s.cfg)
	if err != nil {
		return fmt.Errorf("building levels: %w", err)
	}

	opts := aquarium.OptionsFromConfig(s.cfg)
	opts.RNG = s.rng
	opts.Sprites = s.sprites
	opts.Logger = s.log
	opts.Listener = s.collector
	aq := aquarium.New(opts)
	for _, l := range levels {
		aq.AddLevel(l)
	}

	player := aquarium.NewPlayerFromConfig(s.cfg, s.playerSprite)
	player.SetBounds(aq.Bounds())

	s.aq = aq
	s.player = player
	s.halted = false
	s.lastEvent = nil
	s.bigFishSeen = false
	s.bigFishFrames = 0
	s.powerUpSpawned = false
	s.effects.Clear()

	if err := aq.Repopulate(); err != nil {
		return fmt.Errorf("populating first level: %w", err)
	}
	return nil
}

// Restart begins a new session. Telemetry and output continue across restarts.
func (s *Scene) Restart() error {
	s.log.Info("restarting session", "tick", s.tick)
	return s.reset()
}

// SetInput replaces the input provider.
func (s *Scene) SetInput(in InputProvider) {
	s.input = in
}

// Update advances the scene one frame. It does nothing after game over.
func (s *Scene) Update() {
	if s.halted {
		return
	}

	s.tick++
	s.collector.SetTick(s.tick)
	s.perfCollector.StartTick()

	s.perfCollector.StartPhase(telemetry.PhasePlayer)
	if s.input != nil {
		s.player.SetDirection(s.input.Direction())
	}
	s.player.Update()

	s.perfCollector.StartPhase(telemetry.PhasePowerUp)
	s.watchBigFish()

	if s.control.Tick() {
		s.perfCollector.StartPhase(telemetry.PhaseCollision)
		if s.resolveCollision() {
			s.perfCollector.EndTick()
			s.finishTelemetry()
			return
		}

		s.perfCollector.StartPhase(telemetry.PhasePickup)
		s.collectPowerUps()

		s.perfCollector.StartPhase(telemetry.PhaseAquarium)
		s.aq.Update()
	}
	s.effects.Update()

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()
	s.perfCollector.EndTick()
}

// resolveCollision applies the first player contact of the frame.
// It returns true when the contact ended the game.
func (s *Scene) resolveCollision() bool {
	ev := aquarium.DetectCollisions(s.aq, s.player)
	if ev == nil {
		return false
	}
	cv, ok := s.aq.Creature(ev.Creature)
	if !ok {
		s.log.Error("collision with missing creature", "event", ev)
		return false
	}
	s.lastEvent = ev
	s.log.Debug("collision", "event", ev, "kind", cv.Kind.String(), "value", cv.Value)

	pc := s.cfg.Player
	if s.player.Power() < cv.Value {
		if s.player.LoseLife(pc.DamageDebounce) {
			s.collector.Record(telemetry.NewDamageEvent(s.tick, cv.Kind))
			s.effects.EmitHit(s.player.X(), s.player.Y())
			s.log.Info("player too weak to eat creature", "kind", cv.Kind.String(), "lives", s.player.Lives())
		} else {
			s.collector.Record(telemetry.NewBlockedHitEvent(s.tick, cv.Kind))
		}

		if s.player.Lives() <= 0 {
			s.lastEvent = aquarium.NewGameOverEvent(s.player)
			s.halted = true
			s.collector.Record(telemetry.NewGameOverEvent(s.tick))
			s.logGameOver()
			return true
		}
		return false
	}

	s.aq.RemoveCreature(ev.Creature)
	s.player.AddToScore(1, cv.Value)
	s.collector.Record(telemetry.NewEatEvent(s.tick, cv.Kind, cv.Value))
	s.effects.EmitBubbles(cv.X, cv.Y, cv.Value)

	if pc.PowerMilestone > 0 && s.player.Score()%pc.PowerMilestone == 0 {
		s.player.IncreasePower(1)
		s.collector.Record(telemetry.NewPowerGainEvent(s.tick, s.player.Power()))
		s.log.Info("player power increased", "power", s.player.Power(), "score", s.player.Score())
	}
	return false
}

// collectPowerUps applies at most one power-up the player touches.
func (s *Scene) collectPowerUps() {
	for i := 0; i < s.aq.PowerUpCount(); i++ {
		pu := s.aq.PowerUpAt(i)
		if !aquarium.PowerUpTouches(s.player, pu) {
			continue
		}
		s.player.Grow(s.cfg.Player.GrowthFactor)
		s.aq.RemovePowerUp(pu)
		s.collector.Record(telemetry.NewPowerUpCollectEvent(s.tick))
		s.effects.EmitSparkle(pu.X, pu.Y)
		s.log.Info("power-up collected", "radius", s.player.Radius(), "scale", s.player.VisualScale())
		break
	}
}

// Draw renders the player, then the aquarium. It never mutates the scene.
func (s *Scene) Draw() {
	s.player.Draw()
	s.aq.Draw()
}

// RecordFrame marks a presented frame for the FPS column of perf output.
func (s *Scene) RecordFrame() {
	s.perfCollector.RecordFrame()
}

// Close flushes and closes any output files.
func (s *Scene) Close() error {
	return s.outputManager.Close()
}

// Tick returns the number of frames run.
func (s *Scene) Tick() int32 {
	return s.tick
}

// GameOver reports whether the session has ended.
func (s *Scene) GameOver() bool {
	return s.halted
}

// LastEvent returns the most recent collision or game over event, or nil.
func (s *Scene) LastEvent() *aquarium.Event {
	return s.lastEvent
}

// Aquarium returns the session's aquarium.
func (s *Scene) Aquarium() *aquarium.Aquarium {
	return s.aq
}

// Player returns the session's player.
func (s *Scene) Player() *aquarium.Player {
	return s.player
}

// Effects returns the live feedback particles for drawing.
func (s *Scene) Effects() []systems.EffectParticle {
	return s.effects.Particles
}

// Config returns the configuration the scene was built from.
func (s *Scene) Config() *config.Config {
	return s.cfg
}
