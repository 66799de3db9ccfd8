package telemetry

import "github.com/pthm-cable/fishbowl/components"

// Sample holds the gauges read from the scene when a window is flushed.
type Sample struct {
	LevelIndex    int
	LevelName     string
	LevelScore    int
	LevelTarget   int
	LevelsCleared int

	Lives  int
	Power  int
	Score  int
	Points int

	KindCounts map[components.Kind]int
	Speeds     []float64 // base speed of each live creature
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// tick is the scene frame the next recorded event belongs to
	tick int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns            int
	eats              int
	eatenValue        int
	damage            int
	blockedHits       int
	powerGains        int
	powerUpsSpawned   int
	powerUpsCollected int
	levelUps          int

	// Session totals
	totalEats     int
	totalDamage   int
	totalLevelUps int

	recent []Event
}

// maxRecent bounds the event history kept for milestone detection.
const maxRecent = 64

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// SetTick sets the frame that subsequent listener callbacks are stamped with.
func (c *Collector) SetTick(tick int32) {
	c.tick = tick
}

// Record counts an event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventSpawn:
		c.spawns++
	case EventEat:
		c.eats++
		c.totalEats++
		c.eatenValue += ev.Amount
	case EventDamage:
		c.damage++
		c.totalDamage++
	case EventBlockedHit:
		c.blockedHits++
	case EventPowerGain:
		c.powerGains++
	case EventPowerUpSpawn:
		c.powerUpsSpawned++
	case EventPowerUpCollect:
		c.powerUpsCollected++
	case EventLevelUp:
		c.levelUps++
		c.totalLevelUps++
	}

	if ev.Type != EventSpawn {
		if len(c.recent) == maxRecent {
			c.recent = c.recent[1:]
		}
		c.recent = append(c.recent, ev)
	}
}

// RecordSpawn records a creature spawn. It satisfies the aquarium listener.
func (c *Collector) RecordSpawn(k components.Kind) {
	c.Record(NewSpawnEvent(c.tick, k))
}

// RecordLevelUp records a level transition. It satisfies the aquarium listener.
func (c *Collector) RecordLevelUp(index int, name string) {
	c.Record(NewLevelUpEvent(c.tick, index, name))
}

// Recent returns the most recent non-spawn events, oldest first.
func (c *Collector) Recent() []Event {
	return c.recent
}

// Totals returns session-wide eat, damage and level-up counts.
func (c *Collector) Totals() (eats, damage, levelUps int) {
	return c.totalEats, c.totalDamage, c.totalLevelUps
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	speedMean, speedStd, speedP50, speedP90 := ComputeSpeedStats(s.Speeds)

	creatures := 0
	for _, n := range s.KindCounts {
		creatures += n
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		LevelIndex:    s.LevelIndex,
		LevelName:     s.LevelName,
		LevelScore:    s.LevelScore,
		LevelTarget:   s.LevelTarget,
		LevelsCleared: s.LevelsCleared,

		Lives:  s.Lives,
		Power:  s.Power,
		Score:  s.Score,
		Points: s.Points,

		Creatures:   creatures,
		BaseCount:   s.KindCounts[components.KindBase],
		BiggerCount: s.KindCounts[components.KindBigger],
		PinkCount:   s.KindCounts[components.KindPink],
		SharkCount:  s.KindCounts[components.KindShark],

		Spawns:            c.spawns,
		Eats:              c.eats,
		EatenValue:        c.eatenValue,
		Damage:            c.damage,
		BlockedHits:       c.blockedHits,
		PowerGains:        c.powerGains,
		PowerUpsSpawned:   c.powerUpsSpawned,
		PowerUpsCollected: c.powerUpsCollected,
		LevelUps:          c.levelUps,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.eats = 0
	c.eatenValue = 0
	c.damage = 0
	c.blockedHits = 0
	c.powerGains = 0
	c.powerUpsSpawned = 0
	c.powerUpsCollected = 0
	c.levelUps = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
