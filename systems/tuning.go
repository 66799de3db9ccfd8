package systems

import (
	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/config"
)

// SharkTuning holds the shark dash state machine constants.
type SharkTuning struct {
	CruiseMul          float64
	DashMul            float64
	DashFrames         int
	DashChance         int // percent
	InitialCooldownMin int
	InitialCooldownJit int
	CooldownMin        int
	CooldownJitter     int
	Drift              float64
	MaxDY              float64
}

// PinkTuning holds the pink fish swim wave constants.
type PinkTuning struct {
	PhaseStep     float64
	Amplitude     float64
	VerticalScale float64
}

// Tuning is the movement configuration shared by all movers.
// Built once from config so the per-tick path never touches the global.
type Tuning struct {
	SpeedMul [components.KindPlayer + 1]float64
	Shark    SharkTuning
	Pink     PinkTuning
}

// DefaultTuning returns the stock movement constants.
func DefaultTuning() Tuning {
	t := Tuning{
		Shark: SharkTuning{
			CruiseMul:          1.4,
			DashMul:            2.6,
			DashFrames:         18,
			DashChance:         12,
			InitialCooldownMin: 60,
			InitialCooldownJit: 120,
			CooldownMin:        90,
			CooldownJitter:     120,
			Drift:              0.02,
			MaxDY:              0.6,
		},
		Pink: PinkTuning{PhaseStep: 0.05, Amplitude: 2.0, VerticalScale: 0.5},
	}
	for i := range t.SpeedMul {
		t.SpeedMul[i] = 1
	}
	t.SpeedMul[components.KindBigger] = 0.5
	return t
}

// TuningFromConfig builds movement constants from the loaded config.
func TuningFromConfig(cfg *config.Config) Tuning {
	t := DefaultTuning()
	for _, k := range components.NPCKinds() {
		if cc, ok := cfg.Creatures[k.Key()]; ok && cc.SpeedMultiplier > 0 {
			t.SpeedMul[k] = cc.SpeedMultiplier
		}
	}
	s := cfg.Shark
	t.Shark = SharkTuning{
		CruiseMul:          s.CruiseMultiplier,
		DashMul:            s.DashMultiplier,
		DashFrames:         s.DashFrames,
		DashChance:         s.DashChance,
		InitialCooldownMin: s.InitialCooldownMin,
		InitialCooldownJit: s.InitialCooldownJit,
		CooldownMin:        s.CooldownMin,
		CooldownJitter:     s.CooldownJitter,
		Drift:              s.Drift,
		MaxDY:              s.MaxDY,
	}
	t.Pink = PinkTuning{
		PhaseStep:     cfg.Pink.PhaseStep,
		Amplitude:     cfg.Pink.Amplitude,
		VerticalScale: cfg.Pink.VerticalScale,
	}
	return t
}

// intn guards rng.Intn against a non-positive range.
func intn(rng RNG, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}
