package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishbowl/config"
	"github.com/pthm-cable/fishbowl/game"
	"github.com/pthm-cable/fishbowl/renderer"
	"github.com/pthm-cable/fishbowl/ui"
)

var waterColor = rl.Color{R: 18, G: 60, B: 110, A: 255}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, steered by the autopilot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Sim.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		Logger:         logger,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}

	var err error
	if *headless {
		err = runHeadless(cfg, opts, *maxTicks)
	} else {
		err = runWindow(cfg, opts, *maxTicks)
	}
	if err != nil {
		slog.Error("session failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless drives the scene with the autopilot until game over or maxTicks.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) error {
	s, err := game.NewScene(cfg, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	s.SetInput(game.NewAutopilot(s, rand.New(rand.NewSource(opts.Seed+1))))

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"update_every", cfg.Sim.UpdateEvery,
	)

	for {
		s.Update()

		if s.GameOver() {
			slog.Info("session ended", "tick", s.Tick(), "status", s.Status())
			return nil
		}
		if maxTicks > 0 && int(s.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick(), "status", s.Status())
			return nil
		}
	}
}

// runWindow opens a raylib window and plays with the keyboard.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int) error {
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	rl.InitWindow(w, h, "Fishbowl")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sprites := renderer.NewSpriteCache(cfg, opts.Logger)
	defer sprites.Unload()

	opts.Input = renderer.KeyboardInput{}
	opts.Sprites = sprites
	opts.PlayerSprite = sprites.Player()
	opts.PowerUpSprite = sprites.PowerUp()

	s, err := game.NewScene(cfg, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	particles := renderer.NewParticleRenderer()
	hud := ui.NewHUD()
	gameOver := ui.NewGameOverPanel()

	for !rl.WindowShouldClose() {
		s.Update()
		st := s.Status()

		rl.BeginDrawing()
		rl.ClearBackground(waterColor)
		s.Draw()
		particles.Draw(s.Effects())
		hud.Draw(ui.HUDData{
			Score:        st.Score,
			Power:        st.Power,
			Lives:        st.Lives,
			LevelName:    st.LevelName,
			ScreenWidth:  w,
			ScreenHeight: h,
		})
		restart := st.GameOver && gameOver.Draw(w, h, st.Score, st.Points)
		rl.EndDrawing()
		s.RecordFrame()

		if restart {
			if err := s.Restart(); err != nil {
				return err
			}
		}
		if maxTicks > 0 && int(s.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}
