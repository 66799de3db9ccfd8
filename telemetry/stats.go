package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Level state at window end
	LevelIndex    int    `csv:"level"`
	LevelName     string `csv:"level_name"`
	LevelScore    int    `csv:"level_score"`
	LevelTarget   int    `csv:"level_target"`
	LevelsCleared int    `csv:"levels_cleared"`

	// Player state at window end
	Lives  int `csv:"lives"`
	Power  int `csv:"power"`
	Score  int `csv:"score"`
	Points int `csv:"points"`

	// Population at window end
	Creatures   int `csv:"creatures"`
	BaseCount   int `csv:"base"`
	BiggerCount int `csv:"bigger"`
	PinkCount   int `csv:"pink"`
	SharkCount  int `csv:"shark"`

	// Events during window
	Spawns            int `csv:"spawns"`
	Eats              int `csv:"eats"`
	EatenValue        int `csv:"eaten_value"`
	Damage            int `csv:"damage"`
	BlockedHits       int `csv:"blocked_hits"`
	PowerGains        int `csv:"power_gains"`
	PowerUpsSpawned   int `csv:"powerups_spawned"`
	PowerUpsCollected int `csv:"powerups_collected"`
	LevelUps          int `csv:"level_ups"`

	// Creature speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// ComputeSpeedStats calculates mean, std and percentiles from speed values.
// Empty input yields zeros; a single value has zero spread.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	if math.IsNaN(std) {
		std = 0
	}
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("level", s.LevelIndex),
		slog.String("level_name", s.LevelName),
		slog.Int("level_score", s.LevelScore),
		slog.Int("level_target", s.LevelTarget),
		slog.Int("levels_cleared", s.LevelsCleared),
		slog.Int("lives", s.Lives),
		slog.Int("power", s.Power),
		slog.Int("score", s.Score),
		slog.Int("points", s.Points),
		slog.Int("creatures", s.Creatures),
		slog.Int("base", s.BaseCount),
		slog.Int("bigger", s.BiggerCount),
		slog.Int("pink", s.PinkCount),
		slog.Int("shark", s.SharkCount),
		slog.Int("spawns", s.Spawns),
		slog.Int("eats", s.Eats),
		slog.Int("eaten_value", s.EatenValue),
		slog.Int("damage", s.Damage),
		slog.Int("blocked_hits", s.BlockedHits),
		slog.Int("power_gains", s.PowerGains),
		slog.Int("powerups_spawned", s.PowerUpsSpawned),
		slog.Int("powerups_collected", s.PowerUpsCollected),
		slog.Int("level_ups", s.LevelUps),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
