package telemetry

import "testing"

func hasMilestone(ms []Milestone, typ MilestoneType) bool {
	for _, m := range ms {
		if m.Type == typ {
			return true
		}
	}
	return false
}

func TestMilestoneDetector_Events(t *testing.T) {
	tests := []struct {
		name  string
		stats WindowStats
		want  MilestoneType
	}{
		{"level cleared", WindowStats{LevelUps: 1, LevelIndex: 1, LevelName: "reef", Lives: 3}, MilestoneLevelCleared},
		{"power gained", WindowStats{PowerGains: 1, Power: 2, Score: 25, Lives: 3}, MilestonePowerGained},
		{"powerup collected", WindowStats{PowerUpsCollected: 1, Lives: 3}, MilestonePowerUp},
		{"life lost", WindowStats{Damage: 1, Lives: 2}, MilestoneLifeLost},
		{"game over", WindowStats{Damage: 1, Lives: 0}, MilestoneGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := NewMilestoneDetector(8)
			if got := md.Check(tt.stats); !hasMilestone(got, tt.want) {
				t.Errorf("expected %s milestone, got %v", tt.want, got)
			}
		})
	}
}

func TestMilestoneDetector_QuietWindow(t *testing.T) {
	md := NewMilestoneDetector(8)
	if got := md.Check(WindowStats{Lives: 3, Eats: 1}); len(got) != 0 {
		t.Errorf("expected no milestones, got %v", got)
	}
}

func TestMilestoneDetector_GameOverOnce(t *testing.T) {
	md := NewMilestoneDetector(8)
	md.Check(WindowStats{Lives: 0})
	if got := md.Check(WindowStats{Lives: 0}); hasMilestone(got, MilestoneGameOver) {
		t.Error("game over should only be reported once")
	}
}

func TestMilestoneDetector_LifeLostNotReportedAtGameOver(t *testing.T) {
	md := NewMilestoneDetector(8)
	got := md.Check(WindowStats{Damage: 1, Lives: 0})
	if hasMilestone(got, MilestoneLifeLost) {
		t.Error("final life should be reported as game over, not life lost")
	}
}

func TestMilestoneDetector_FeedingFrenzy(t *testing.T) {
	md := NewMilestoneDetector(10)

	// Steady eat rate
	for i := 0; i < 5; i++ {
		md.Check(WindowStats{WindowEndTick: int32(i * 600), Eats: 2, Lives: 3})
	}

	got := md.Check(WindowStats{WindowEndTick: 3000, Eats: 8, Lives: 3})
	if !hasMilestone(got, MilestoneFeedingFrenzy) {
		t.Error("expected feeding_frenzy milestone")
	}
}

func TestMilestoneDetector_FeedingFrenzyNeedsHistory(t *testing.T) {
	md := NewMilestoneDetector(10)
	md.Check(WindowStats{Eats: 1, Lives: 3})

	got := md.Check(WindowStats{Eats: 20, Lives: 3})
	if hasMilestone(got, MilestoneFeedingFrenzy) {
		t.Error("feeding_frenzy should need at least 3 windows of history")
	}
}

func TestMilestoneDetector_FeedingFrenzyMinimumEats(t *testing.T) {
	md := NewMilestoneDetector(10)
	for i := 0; i < 5; i++ {
		md.Check(WindowStats{Eats: 1, Lives: 3})
	}

	// 4x average but below the absolute floor
	got := md.Check(WindowStats{Eats: 4, Lives: 3})
	if hasMilestone(got, MilestoneFeedingFrenzy) {
		t.Error("feeding_frenzy should require at least 5 eats")
	}
}
