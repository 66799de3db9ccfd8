package game

import (
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/fishbowl/aquarium"
	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/config"
	"github.com/pthm-cable/fishbowl/telemetry"
)

// testConfig returns the defaults with a single level that never completes
// and spawns nothing, so tests place every creature themselves.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Levels = []config.LevelConfig{{Name: "test", TargetScore: 1000}}
	return cfg
}

func newTestScene(t *testing.T, cfg *config.Config, opts Options) *Scene {
	t.Helper()
	if opts.RNG == nil {
		opts.RNG = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s, err := NewScene(cfg, opts)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	// Stationary player
	s.Player().ChangeSpeed(0)
	return s
}

type stubControl struct{ tick bool }

func (c stubControl) Tick() bool { return c.tick }

type stubInput struct{ dx, dy float64 }

func (in stubInput) Direction() (float64, float64) { return in.dx, in.dy }

func TestWeakPlayerLosesLifeOnce(t *testing.T) {
	s := newTestScene(t, testConfig(t), Options{})
	p := s.Player()
	s.Aquarium().AddCreature(components.KindShark, p.X(), p.Y(), 0)

	s.Update()
	if p.Lives() != 2 {
		t.Fatalf("lives = %d, want 2", p.Lives())
	}
	if p.DamageDebounce() != 180 {
		t.Errorf("debounce = %d, want 180", p.DamageDebounce())
	}
	if s.Aquarium().CreatureCount() != 1 {
		t.Errorf("creature count = %d, want 1", s.Aquarium().CreatureCount())
	}
	if !s.LastEvent().IsCollision() {
		t.Errorf("last event = %v, want collision", s.LastEvent())
	}

	// Contact continues while immune
	for i := 0; i < 10; i++ {
		s.Update()
	}
	if p.Lives() != 2 {
		t.Errorf("lives during immunity = %d, want 2", p.Lives())
	}
	if s.GameOver() {
		t.Error("game should not be over")
	}
}

func TestEatCreature(t *testing.T) {
	s := newTestScene(t, testConfig(t), Options{})
	p := s.Player()
	s.Aquarium().AddCreature(components.KindPink, p.X(), p.Y(), 0)
	p.IncreasePower(1) // power 2 eats pink fish

	s.Update()

	if s.Aquarium().CreatureCount() != 0 {
		t.Errorf("creature count = %d, want 0", s.Aquarium().CreatureCount())
	}
	if p.Score() != 1 || p.Points() != 2 {
		t.Errorf("score/points = %d/%d, want 1/2", p.Score(), p.Points())
	}
	if got := s.Aquarium().CurrentLevel().Score(); got != 0 {
		// The level never spawned the pink fish, so nothing is consumed
		t.Errorf("level score = %d, want 0", got)
	}
	if p.Lives() != 3 {
		t.Errorf("lives = %d, want 3", p.Lives())
	}
}

func TestEatCreditsLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Levels[0].Population = []config.PopulationConfig{{Kind: "base_fish", Count: 1}}
	s := newTestScene(t, cfg, Options{})
	aq := s.Aquarium()
	if aq.CreatureCount() != 1 {
		t.Fatalf("creature count = %d, want 1 after initial populate", aq.CreatureCount())
	}

	// Move the player onto the spawned fish
	e, _ := aq.CreatureAt(0)
	cv, _ := aq.Creature(e)
	s.Player().Pos = components.Position{X: cv.X, Y: cv.Y}

	s.Update()

	if got := aq.CurrentLevel().Score(); got != 1 {
		t.Errorf("level score = %d, want 1", got)
	}
	// Repopulated in the same update
	if aq.CreatureCount() != 1 {
		t.Errorf("creature count = %d, want 1 after repopulate", aq.CreatureCount())
	}
}

func TestEatPinkConsumesQuota(t *testing.T) {
	cfg := testConfig(t)
	cfg.Levels[0].Population = []config.PopulationConfig{{Kind: "pink_fish", Count: 2}}
	s := newTestScene(t, cfg, Options{Control: stubControl{tick: false}})
	aq := s.Aquarium()
	lvl := aq.CurrentLevel()
	if n := lvl.Node(components.KindPink); n == nil || n.Current != 2 {
		t.Fatalf("pink quota = %+v, want current 2", n)
	}

	p := s.Player()
	p.IncreasePower(1)
	e, _ := aq.CreatureAt(0)
	cv, _ := aq.Creature(e)
	p.Pos = components.Position{X: cv.X, Y: cv.Y}

	// Resolve the contact alone so no repopulate follows the eat
	if s.resolveCollision() {
		t.Fatal("eating should not end the game")
	}

	if got := lvl.Node(components.KindPink).Current; got != 1 {
		t.Errorf("pink quota current = %d, want 1", got)
	}
	if got := lvl.Score(); got != 2 {
		t.Errorf("level score = %d, want 2", got)
	}
	if p.Score() != 1 || p.Points() != 2 {
		t.Errorf("score/points = %d/%d, want 1/2", p.Score(), p.Points())
	}
	if aq.CreatureCount() != 1 {
		t.Errorf("creature count = %d, want 1", aq.CreatureCount())
	}
}

func TestPowerMilestone(t *testing.T) {
	s := newTestScene(t, testConfig(t), Options{})
	p := s.Player()

	for i := 1; i <= 25; i++ {
		s.Aquarium().AddCreature(components.KindBase, p.X(), p.Y(), 0)
		s.Update()
		if i == 24 && p.Power() != 1 {
			t.Fatalf("power after 24 eats = %d, want 1", p.Power())
		}
	}

	if p.Score() != 25 {
		t.Fatalf("score = %d, want 25", p.Score())
	}
	if p.Power() != 2 {
		t.Errorf("power after 25 eats = %d, want 2", p.Power())
	}
}

func TestGameOverHalts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Player.Lives = 1
	s := newTestScene(t, cfg, Options{})
	p := s.Player()
	s.Aquarium().AddCreature(components.KindBigger, p.X(), p.Y(), 0)

	s.Update()

	if !s.GameOver() {
		t.Fatal("expected game over")
	}
	if !s.LastEvent().IsGameOver() {
		t.Errorf("last event = %v, want game over", s.LastEvent())
	}
	if s.LastEvent().Player != p {
		t.Error("game over event should reference the player")
	}

	tick := s.Tick()
	x, y := p.X(), p.Y()
	s.SetInput(stubInput{dx: 1})
	p.ChangeSpeed(5)
	for i := 0; i < 5; i++ {
		s.Update()
	}
	if s.Tick() != tick {
		t.Errorf("tick advanced after game over: %d -> %d", tick, s.Tick())
	}
	if p.X() != x || p.Y() != y {
		t.Error("player moved after game over")
	}
	if s.Aquarium().CreatureCount() != 1 {
		t.Error("aquarium changed after game over")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Player.Lives = 1
	s := newTestScene(t, cfg, Options{})
	s.Aquarium().AddCreature(components.KindShark, s.Player().X(), s.Player().Y(), 0)
	s.Update()
	if !s.GameOver() {
		t.Fatal("expected game over")
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.GameOver() || s.LastEvent() != nil {
		t.Error("restart should clear game over")
	}
	if s.Player().Lives() != 1 || s.Aquarium().CreatureCount() != 0 {
		t.Errorf("restart state: lives %d, creatures %d", s.Player().Lives(), s.Aquarium().CreatureCount())
	}
}

func TestUpdateControllerGatesCollisions(t *testing.T) {
	s := newTestScene(t, testConfig(t), Options{Control: stubControl{tick: false}})
	p := s.Player()
	s.Aquarium().AddCreature(components.KindShark, p.X(), p.Y(), 0)

	s.Update()

	if p.Lives() != 3 {
		t.Errorf("lives = %d, want 3 when the step does not run", p.Lives())
	}
	if s.Tick() != 1 {
		t.Errorf("tick = %d, want 1", s.Tick())
	}
}

func TestPlayerFollowsInput(t *testing.T) {
	s := newTestScene(t, testConfig(t), Options{Input: stubInput{dx: 3, dy: 4}})
	p := s.Player()
	p.ChangeSpeed(10)
	x, y := p.X(), p.Y()

	s.Update()

	if dx := p.X() - x; dx < 5.99 || dx > 6.01 {
		t.Errorf("moved x by %v, want 6", dx)
	}
	if dy := p.Y() - y; dy < 7.99 || dy > 8.01 {
		t.Errorf("moved y by %v, want 8", dy)
	}
}

func TestPowerUpSpawnsOnceAfterBigFish(t *testing.T) {
	s := newTestScene(t, testConfig(t), Options{})
	aq := s.Aquarium()
	aq.AddCreature(components.KindBigger, 900, 700, 0)

	for i := 0; i < 600; i++ {
		s.Update()
	}
	if aq.PowerUpCount() != 0 {
		t.Fatalf("power-up spawned after %d frames, want > 600", 600)
	}

	s.Update()
	if aq.PowerUpCount() != 1 {
		t.Fatalf("power-up count = %d, want 1", aq.PowerUpCount())
	}
	pu := aq.PowerUpAt(0)
	if pu.X != 550 || pu.Y != 400 || pu.Radius != 16 {
		t.Errorf("power-up at (%v, %v) r=%v, want (550, 400) r=16", pu.X, pu.Y, pu.Radius)
	}

	aq.RemovePowerUp(pu)
	for i := 0; i < 1000; i++ {
		s.Update()
	}
	if aq.PowerUpCount() != 0 {
		t.Error("power-up should spawn only once per session")
	}
}

func TestPowerUpSpawnClampedToTank(t *testing.T) {
	s := newTestScene(t, testConfig(t), Options{})
	aq := s.Aquarium()
	s.Player().Pos = components.Position{X: 900, Y: 700}
	aq.AddCreature(components.KindBigger, 100, 100, 0)

	for i := 0; i <= 600; i++ {
		s.Update()
	}
	pu := aq.PowerUpAt(0)
	if pu == nil {
		t.Fatal("expected a power-up")
	}
	if pu.X != 1004 || pu.Y != 748 {
		t.Errorf("power-up at (%v, %v), want (1004, 748)", pu.X, pu.Y)
	}
}

func TestCollectPowerUp(t *testing.T) {
	s := newTestScene(t, testConfig(t), Options{})
	p := s.Player()
	aq := s.Aquarium()
	aq.AddPowerUp(aquarium.NewPowerUp(p.X(), p.Y(), 16, nil))
	aq.AddPowerUp(aquarium.NewPowerUp(p.X(), p.Y(), 16, nil))

	s.Update()

	if p.Radius() != 15 || p.VisualScale() != 1.5 {
		t.Errorf("radius/scale = %v/%v, want 15/1.5", p.Radius(), p.VisualScale())
	}
	if aq.PowerUpCount() != 1 {
		t.Errorf("power-up count = %d, want 1 (first match only)", aq.PowerUpCount())
	}
}

func TestFrameControl(t *testing.T) {
	tests := []struct {
		every int
		want  []bool
	}{
		{1, []bool{true, true, true}},
		{0, []bool{true, true}},
		{3, []bool{false, false, true, false, false, true}},
	}
	for _, tt := range tests {
		fc := NewFrameControl(tt.every)
		for i, want := range tt.want {
			if got := fc.Tick(); got != want {
				t.Errorf("every=%d frame %d: Tick() = %v, want %v", tt.every, i+1, got, want)
			}
		}
	}
}

func TestAutopilot(t *testing.T) {
	t.Run("chases edible fish", func(t *testing.T) {
		s := newTestScene(t, testConfig(t), Options{})
		p := s.Player()
		s.Aquarium().AddCreature(components.KindBase, p.X()+100, p.Y(), 0)
		s.Aquarium().AddCreature(components.KindBase, p.X(), p.Y()+300, 0)

		ap := NewAutopilot(s, rand.New(rand.NewSource(2)))
		dx, dy := ap.Direction()
		if dx != 1 || dy != 0 {
			t.Errorf("direction = (%v, %v), want (1, 0)", dx, dy)
		}
	})

	t.Run("flees nearby threat", func(t *testing.T) {
		s := newTestScene(t, testConfig(t), Options{})
		p := s.Player()
		s.Aquarium().AddCreature(components.KindShark, p.X(), p.Y()-100, 0)
		s.Aquarium().AddCreature(components.KindBase, p.X(), p.Y()-300, 0)

		ap := NewAutopilot(s, rand.New(rand.NewSource(2)))
		dx, dy := ap.Direction()
		if dx != 0 || dy != 1 {
			t.Errorf("direction = (%v, %v), want (0, 1)", dx, dy)
		}
	})

	t.Run("wanders when tank is empty", func(t *testing.T) {
		s := newTestScene(t, testConfig(t), Options{})
		ap := NewAutopilot(s, rand.New(rand.NewSource(2)))
		dx, dy := ap.Direction()
		for i := 0; i < ap.WanderFrames-1; i++ {
			if x, y := ap.Direction(); x != dx || y != dy {
				t.Fatalf("wander direction changed early at frame %d", i+1)
			}
		}
	})
}

func TestHeadlessSoak(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	dir := t.TempDir()
	var windows int
	s, err := NewScene(cfg, Options{
		Seed:           7,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		OutputDir:      dir,
		StatsWindowSec: 1,
		StatsCallback:  func(telemetry.WindowStats) { windows++ },
	})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	s.SetInput(NewAutopilot(s, rand.New(rand.NewSource(7))))

	for i := 0; i < 600 && !s.GameOver(); i++ {
		s.Update()
		p, b := s.Player(), s.Aquarium().Bounds()
		if p.X() < 0 || p.X() > b.MaxX || p.Y() < 0 || p.Y() > b.MaxY {
			t.Fatalf("player out of bounds at tick %d: (%v, %v)", s.Tick(), p.X(), p.Y())
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if windows == 0 {
		t.Error("expected at least one stats window")
	}
	for _, name := range []string{"telemetry.csv", "perf.csv", "milestones.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
