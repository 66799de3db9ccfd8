package telemetry

import (
	"math"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedCollector(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

// runSceneTick times one tick through the scene phases. Phases with a zero
// duration are skipped, like a frame the update controller holds back.
func runSceneTick(pc *PerfCollector, clk *fakeClock, d [numPhases]time.Duration) {
	pc.StartTick()
	for ph := PhasePlayer; ph < numPhases; ph++ {
		if d[ph] == 0 {
			continue
		}
		pc.StartPhase(ph)
		clk.advance(d[ph])
	}
	pc.EndTick()
}

func TestPhaseNames(t *testing.T) {
	want := []string{"player", "powerup", "collision", "pickup", "aquarium", "telemetry"}
	for i, name := range want {
		if got := Phase(i).String(); got != name {
			t.Errorf("Phase(%d) = %q, want %q", i, got, name)
		}
	}
	if Phase(200).String() != "unknown" {
		t.Error("out of range phase should be unknown")
	}
}

func TestPerfSceneBreakdown(t *testing.T) {
	pc, clk := newClockedCollector(10)

	// 100us ticks: aquarium dominates
	step := [numPhases]time.Duration{10 * time.Microsecond, 5 * time.Microsecond, 10 * time.Microsecond, 5 * time.Microsecond, 60 * time.Microsecond, 10 * time.Microsecond}
	for i := 0; i < 4; i++ {
		runSceneTick(pc, clk, step)
	}

	s := pc.Stats()
	if s.AvgTick != 100*time.Microsecond || s.MinTick != s.AvgTick || s.MaxTick != s.AvgTick {
		t.Fatalf("tick avg/min/max = %v/%v/%v, want 100us", s.AvgTick, s.MinTick, s.MaxTick)
	}
	if s.TicksPerSecond != 10000 {
		t.Errorf("ticks/sec = %v, want 10000", s.TicksPerSecond)
	}

	wantPct := PhaseShares{10, 5, 10, 5, 60, 10}
	total := 0.0
	for ph := PhasePlayer; ph < numPhases; ph++ {
		if math.Abs(s.PhasePct[ph]-wantPct[ph]) > 1e-9 {
			t.Errorf("%s pct = %v, want %v", ph, s.PhasePct[ph], wantPct[ph])
		}
		if s.PhaseAvg[ph] != step[ph] {
			t.Errorf("%s avg = %v, want %v", ph, s.PhaseAvg[ph], step[ph])
		}
		total += s.PhasePct[ph]
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("phase shares sum to %v, want 100", total)
	}
	if s.Slowest() != PhaseAquarium {
		t.Errorf("slowest = %s, want aquarium", s.Slowest())
	}
}

func TestPerfHeldBackTicks(t *testing.T) {
	pc, clk := newClockedCollector(10)

	full := [numPhases]time.Duration{10 * time.Microsecond, 10 * time.Microsecond, 20 * time.Microsecond, 10 * time.Microsecond, 40 * time.Microsecond, 10 * time.Microsecond}
	held := [numPhases]time.Duration{PhasePlayer: 10 * time.Microsecond, PhasePowerUp: 10 * time.Microsecond, PhaseTelemetry: 20 * time.Microsecond}
	runSceneTick(pc, clk, full)
	runSceneTick(pc, clk, held)

	s := pc.Stats()
	if s.MinTick != 40*time.Microsecond || s.MaxTick != 100*time.Microsecond || s.AvgTick != 70*time.Microsecond {
		t.Fatalf("tick min/max/avg = %v/%v/%v", s.MinTick, s.MaxTick, s.AvgTick)
	}
	// Skipped phases count as zero for the held-back tick
	if s.PhaseAvg[PhaseAquarium] != 20*time.Microsecond {
		t.Errorf("aquarium avg = %v, want 20us", s.PhaseAvg[PhaseAquarium])
	}
	if s.PhaseAvg[PhaseTelemetry] != 15*time.Microsecond {
		t.Errorf("telemetry avg = %v, want 15us", s.PhaseAvg[PhaseTelemetry])
	}
}

func TestPerfRingKeepsNewestTicks(t *testing.T) {
	pc, clk := newClockedCollector(3)

	slow := [numPhases]time.Duration{PhaseAquarium: time.Millisecond}
	fast := [numPhases]time.Duration{PhaseAquarium: 100 * time.Microsecond}
	for i := 0; i < 5; i++ {
		runSceneTick(pc, clk, slow)
	}
	for i := 0; i < 3; i++ {
		runSceneTick(pc, clk, fast)
	}

	s := pc.Stats()
	if s.MaxTick != 100*time.Microsecond {
		t.Errorf("max tick = %v; slow ticks should have left the ring", s.MaxTick)
	}
}

func TestPerfEmptyAndFrames(t *testing.T) {
	pc, clk := newClockedCollector(5)

	s := pc.Stats()
	if s.AvgTick != 0 || s.TicksPerSecond != 0 || s.FPS != 0 {
		t.Errorf("empty stats = %+v", s)
	}

	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("one frame gives no rate")
	}
	clk.advance(20 * time.Millisecond)
	pc.RecordFrame()
	if fps := pc.Stats().FPS; math.Abs(fps-50) > 1e-9 {
		t.Errorf("fps = %v, want 50", fps)
	}
}

func TestPerfCSVRow(t *testing.T) {
	s := PerfStats{
		AvgTick:        250 * time.Microsecond,
		MinTick:        200 * time.Microsecond,
		MaxTick:        400 * time.Microsecond,
		TicksPerSecond: 4000.4,
		FPS:            59.7,
		PhasePct:       PhaseShares{PhasePlayer: 12.345, PhaseCollision: 30, PhaseAquarium: 57.66},
	}

	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 250 || row.MinTickUS != 200 || row.MaxTickUS != 400 {
		t.Errorf("timing columns = %+v", row)
	}
	if row.TicksPerSec != 4000 || row.FPS != 60 {
		t.Errorf("rates = %v/%v, want 4000/60", row.TicksPerSec, row.FPS)
	}
	if row.PlayerPct != 12.3 || row.CollisionPct != 30 || row.AquariumPct != 57.7 {
		t.Errorf("phase columns = %+v", row)
	}
	if row.PowerUpPct != 0 || row.PickupPct != 0 || row.TelemetryPct != 0 {
		t.Errorf("unused phases should be zero: %+v", row)
	}
}
