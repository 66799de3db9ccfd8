package game

import (
	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles milestones.
func (s *Scene) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}
	s.writeWindow()
}

// finishTelemetry flushes the partial window at game over.
func (s *Scene) finishTelemetry() {
	s.writeWindow()
}

func (s *Scene) writeWindow() {
	stats := s.collector.Flush(s.tick, s.sample())
	perfStats := s.perfCollector.Stats()

	// Call stats callback if provided
	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.outputManager.WriteTelemetry(stats); err != nil {
		s.log.Error("failed to write telemetry", "error", err)
	}
	if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		s.log.Error("failed to write perf", "error", err)
	}

	for _, m := range s.milestones.Check(stats) {
		if s.logStats {
			m.LogMilestone()
		}
		if err := s.outputManager.WriteMilestone(m); err != nil {
			s.log.Error("failed to write milestone", "error", err)
		}
	}
}

// sample reads the gauges for a stats window.
func (s *Scene) sample() telemetry.Sample {
	smp := telemetry.Sample{
		LevelIndex:    s.aq.LevelIndex(),
		LevelsCleared: s.aq.LevelsCleared(),
		Lives:         s.player.Lives(),
		Power:         s.player.Power(),
		Score:         s.player.Score(),
		Points:        s.player.Points(),
		KindCounts:    make(map[components.Kind]int),
	}
	if lvl := s.aq.CurrentLevel(); lvl != nil {
		smp.LevelName = lvl.Name
		smp.LevelScore = lvl.Score()
		smp.LevelTarget = lvl.TargetScore
	}

	for _, c := range s.aq.Creatures() {
		smp.KindCounts[c.Kind]++
		smp.Speeds = append(smp.Speeds, float64(c.Speed))
	}
	return smp
}
