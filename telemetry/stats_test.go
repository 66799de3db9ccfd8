package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/fishbowl/components"
)

func TestComputeSpeedStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		mean     float64
		std      float64
		p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{7}, 7, 0, 7, 7},
		{"unsorted four", []float64{4, 1, 3, 2}, 2.5, 1.2910, 2, 4},
		{"one to ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 3.0277, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, p90 := ComputeSpeedStats(tt.values)
			if math.Abs(mean-tt.mean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if p50 != tt.p50 {
				t.Errorf("p50 = %v, want %v", p50, tt.p50)
			}
			if p90 != tt.p90 {
				t.Errorf("p90 = %v, want %v", p90, tt.p90)
			}
		})
	}
}

func TestComputeSpeedStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeSpeedStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1) // 10 ticks per window

	if c.WindowDurationTicks() != 10 {
		t.Fatalf("WindowDurationTicks() = %d, want 10", c.WindowDurationTicks())
	}

	c.RecordSpawn(components.KindBase)
	c.RecordSpawn(components.KindShark)
	c.Record(NewEatEvent(3, components.KindBase, 1))
	c.Record(NewEatEvent(4, components.KindPink, 2))
	c.Record(NewDamageEvent(5, components.KindShark))
	c.Record(NewBlockedHitEvent(6, components.KindShark))
	c.RecordLevelUp(1, "reef")

	if c.ShouldFlush(9) {
		t.Error("should not flush before a full window")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush after a full window")
	}

	stats := c.Flush(10, Sample{
		LevelIndex: 1,
		LevelName:  "reef",
		Lives:      2,
		Power:      1,
		Score:      2,
		Points:     3,
		KindCounts: map[components.Kind]int{
			components.KindBase:  4,
			components.KindShark: 1,
		},
		Speeds: []float64{1, 2, 3},
	})

	if stats.Spawns != 2 {
		t.Errorf("Spawns = %d, want 2", stats.Spawns)
	}
	if stats.Eats != 2 || stats.EatenValue != 3 {
		t.Errorf("Eats = %d EatenValue = %d, want 2 and 3", stats.Eats, stats.EatenValue)
	}
	if stats.Damage != 1 || stats.BlockedHits != 1 {
		t.Errorf("Damage = %d BlockedHits = %d, want 1 and 1", stats.Damage, stats.BlockedHits)
	}
	if stats.LevelUps != 1 {
		t.Errorf("LevelUps = %d, want 1", stats.LevelUps)
	}
	if stats.Creatures != 5 || stats.BaseCount != 4 || stats.SharkCount != 1 {
		t.Errorf("population = %d/%d/%d, want 5/4/1", stats.Creatures, stats.BaseCount, stats.SharkCount)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("SimTimeSec = %v, want 1.0", stats.SimTimeSec)
	}
	if stats.SpeedMean != 2 {
		t.Errorf("SpeedMean = %v, want 2", stats.SpeedMean)
	}

	// Counters reset, totals persist
	next := c.Flush(20, Sample{})
	if next.Eats != 0 || next.Spawns != 0 || next.WindowStartTick != 10 {
		t.Errorf("second window not reset: %+v", next)
	}
	eats, damage, levelUps := c.Totals()
	if eats != 2 || damage != 1 || levelUps != 1 {
		t.Errorf("Totals() = %d, %d, %d, want 2, 1, 1", eats, damage, levelUps)
	}

	// Spawns are not kept in the recent history
	for _, ev := range c.Recent() {
		if ev.Type == EventSpawn {
			t.Error("spawn event found in recent history")
		}
	}
	if len(c.Recent()) != 5 {
		t.Errorf("len(Recent()) = %d, want 5", len(c.Recent()))
	}
}

func TestCollectorStampsListenerEvents(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)
	c.SetTick(42)
	c.RecordLevelUp(2, "deep")

	recent := c.Recent()
	if len(recent) != 1 {
		t.Fatalf("len(Recent()) = %d, want 1", len(recent))
	}
	if recent[0].Tick != 42 || recent[0].Amount != 2 || recent[0].Label != "deep" {
		t.Errorf("unexpected level up event: %+v", recent[0])
	}
}

func TestCollectorRecentIsBounded(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)
	for i := 0; i < maxRecent+10; i++ {
		c.Record(NewEatEvent(int32(i), components.KindBase, 1))
	}
	recent := c.Recent()
	if len(recent) != maxRecent {
		t.Fatalf("len(Recent()) = %d, want %d", len(recent), maxRecent)
	}
	if recent[0].Tick != 10 {
		t.Errorf("oldest tick = %d, want 10", recent[0].Tick)
	}
}
