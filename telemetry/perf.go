package telemetry

import (
	"log/slog"
	"math"
	"time"
)

// Phase is one step of the scene update, in execution order.
type Phase uint8

const (
	PhasePlayer Phase = iota
	PhasePowerUp
	PhaseCollision
	PhasePickup
	PhaseAquarium
	PhaseTelemetry

	numPhases
)

var phaseNames = [numPhases]string{"player", "powerup", "collision", "pickup", "aquarium", "telemetry"}

// String returns the phase name used in logs and CSV columns.
func (ph Phase) String() string {
	if ph < numPhases {
		return phaseNames[ph]
	}
	return "unknown"
}

// PhaseTimes holds one duration per scene phase.
type PhaseTimes [numPhases]time.Duration

// PhaseShares holds one percentage of tick time per scene phase.
type PhaseShares [numPhases]float64

type tickSample struct {
	total  time.Duration
	phases PhaseTimes
}

// PerfCollector times scene ticks by phase over a ring of recent ticks.
// Phases a tick skips simply stay at zero for that tick.
type PerfCollector struct {
	now func() time.Time

	ring   []tickSample
	next   int
	filled int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	active     Phase
	inPhase    bool

	// Presented frames (graphical mode only)
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:  time.Now,
		ring: make([]tickSample, windowSize),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.cur = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	if ph >= numPhases {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.active = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.active] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick closes the running phase and stores the tick in the ring.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame marks a presented frame; the gap to the previous one gives FPS.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the ticks currently in the ring.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	PhaseAvg PhaseTimes
	PhasePct PhaseShares

	TicksPerSecond float64
	FPS            float64
}

// Stats aggregates the ring.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var sum PhaseTimes
	for i, t := range p.ring[:p.filled] {
		total += t.total
		if i == 0 || t.total < s.MinTick {
			s.MinTick = t.total
		}
		s.MaxTick = max(s.MaxTick, t.total)
		for ph, d := range t.phases {
			sum[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTick = total / n
	for ph := range sum {
		s.PhaseAvg[ph] = sum[ph] / n
	}
	if total > 0 {
		for ph := range sum {
			s.PhasePct[ph] = float64(sum[ph]) / float64(total) * 100
		}
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// Slowest returns the phase with the largest share of tick time.
func (s PerfStats) Slowest() Phase {
	best := PhasePlayer
	for ph := PhasePlayer; ph < numPhases; ph++ {
		if s.PhasePct[ph] > s.PhasePct[best] {
			best = ph
		}
	}
	return best
}

// LogStats logs the summary at Info.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
// Phases under 0.1% of tick time are left out.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
		slog.String("slowest", s.Slowest().String()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph := PhasePlayer; ph < numPhases; ph++ {
		if pct := s.PhasePct[ph]; pct >= 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", round1(pct)))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	PlayerPct    float64 `csv:"player_pct"`
	PowerUpPct   float64 `csv:"powerup_pct"`
	CollisionPct float64 `csv:"collision_pct"`
	PickupPct    float64 `csv:"pickup_pct"`
	AquariumPct  float64 `csv:"aquarium_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	row := PerfStatsCSV{
		WindowEnd:   windowEnd,
		AvgTickUS:   s.AvgTick.Microseconds(),
		MinTickUS:   s.MinTick.Microseconds(),
		MaxTickUS:   s.MaxTick.Microseconds(),
		TicksPerSec: math.Round(s.TicksPerSecond),
		FPS:         math.Round(s.FPS),
	}
	cols := [numPhases]*float64{
		PhasePlayer:    &row.PlayerPct,
		PhasePowerUp:   &row.PowerUpPct,
		PhaseCollision: &row.CollisionPct,
		PhasePickup:    &row.PickupPct,
		PhaseAquarium:  &row.AquariumPct,
		PhaseTelemetry: &row.TelemetryPct,
	}
	for ph, col := range cols {
		*col = round1(s.PhasePct[ph])
	}
	return row
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
