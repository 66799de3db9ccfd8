package main

import (
	"io"
	"log"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/fishbowl/config"
	"github.com/pthm-cable/fishbowl/game"
	"github.com/pthm-cable/fishbowl/telemetry"
)

// failedFitness is returned when a run cannot be set up.
const failedFitness = 1e9

// FitnessEvaluator runs autopilot sessions and scores how well their length
// matches the target.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	targetTicks int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
	lastSurvive float64 // mean survival ticks from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks, targetTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		targetTicks: targetTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastSurvival returns the mean survival ticks from the most recent evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvive
}

// runResult holds the results from a single session.
type runResult struct {
	survivalTicks int32
	levelsCleared int
	levelCount    int
	windowStats   []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg, err := fe.baseConfig.Clone()
	if err != nil {
		log.Printf("copying config: %v", err)
		return failedFitness
	}
	fe.params.ApplyToConfig(cfg, x)

	// Seeds share nothing but the read-only config
	results := make([]*runResult, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx], errs[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality, totalSurvival float64
	for i, r := range results {
		if errs[i] != nil {
			log.Printf("seed %d: %v", fe.seeds[i], errs[i])
			return failedFitness
		}
		q := fe.computeQuality(r)
		totalFitness += fe.computeFitness(r, q)
		totalQuality += q
		totalSurvival += float64(r.survivalTicks)
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.lastSurvive = totalSurvival / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation plays one autopilot session until game over or maxTicks.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	result := &runResult{levelCount: len(cfg.Levels)}

	s, err := game.NewScene(cfg, game.Options{
		Seed:           seed,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer s.Close()
	s.SetInput(game.NewAutopilot(s, rand.New(rand.NewSource(seed+1))))

	for s.Tick() < fe.maxTicks && !s.GameOver() {
		s.Update()
	}

	result.survivalTicks = s.Tick()
	result.levelsCleared = s.Aquarium().LevelsCleared()
	return result, nil
}

// computeFitness scores a run (lower = better).
// Formula: ln(survival/target)² − 0.2 × quality
// Matching the target session length dominates; quality breaks ties.
func (fe *FitnessEvaluator) computeFitness(r *runResult, quality float64) float64 {
	survival := math.Max(float64(r.survivalTicks), 1)
	logErr := math.Log(survival / float64(fe.targetTicks))
	return logErr*logErr - 0.2*quality
}

// Quality component weights.
const (
	qualityWeightProgress = 0.5
	qualityWeightPacing   = 0.5

	qualityWarmupWindows = 1 // skip first N windows
)

// computeQuality computes session quality ∈ [0, 1]: level progress plus
// steady eating across windows.
func (fe *FitnessEvaluator) computeQuality(r *runResult) float64 {
	progress := 0.0
	if r.levelCount > 0 {
		progress = clamp01(float64(r.levelsCleared) / float64(r.levelCount))
	}

	pacing := 0.0
	if len(r.windowStats) > qualityWarmupWindows+1 {
		valid := r.windowStats[qualityWarmupWindows:]
		eats := make([]float64, len(valid))
		for i, w := range valid {
			eats[i] = float64(w.Eats)
		}
		mean, std := stat.MeanStdDev(eats, nil)
		if mean > 0 {
			cv := std / mean
			pacing = math.Exp(-cv * cv)
		}
	}

	return clamp01(qualityWeightProgress*progress + qualityWeightPacing*pacing)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
