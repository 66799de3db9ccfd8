package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneLevelCleared  MilestoneType = "level_cleared"
	MilestonePowerGained   MilestoneType = "power_gained"
	MilestonePowerUp       MilestoneType = "powerup_collected"
	MilestoneLifeLost      MilestoneType = "life_lost"
	MilestoneFeedingFrenzy MilestoneType = "feeding_frenzy"
	MilestoneGameOver      MilestoneType = "game_over"
)

// Milestone represents an automatically detected moment in a session.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Tick        int32         `csv:"tick"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"description", m.Description,
	)
}

// MilestoneDetector detects interesting moments from window stats.
type MilestoneDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	gameOverSeen bool
}

// NewMilestoneDetector creates a detector with the given history size.
func NewMilestoneDetector(historySize int) *MilestoneDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful eat rate average
	}
	return &MilestoneDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats WindowStats) []Milestone {
	var milestones []Milestone
	tick := stats.WindowEndTick

	if stats.LevelUps > 0 {
		milestones = append(milestones, Milestone{
			Type:        MilestoneLevelCleared,
			Tick:        tick,
			Description: fmt.Sprintf("Advanced to level %d (%s), %d cleared", stats.LevelIndex, stats.LevelName, stats.LevelsCleared),
		})
	}

	if stats.PowerGains > 0 {
		milestones = append(milestones, Milestone{
			Type:        MilestonePowerGained,
			Tick:        tick,
			Description: fmt.Sprintf("Power reached %d at score %d", stats.Power, stats.Score),
		})
	}

	if stats.PowerUpsCollected > 0 {
		milestones = append(milestones, Milestone{
			Type:        MilestonePowerUp,
			Tick:        tick,
			Description: "Growth power-up collected",
		})
	}

	if stats.Damage > 0 && stats.Lives > 0 {
		milestones = append(milestones, Milestone{
			Type:        MilestoneLifeLost,
			Tick:        tick,
			Description: fmt.Sprintf("Lost %d life, %d remaining", stats.Damage, stats.Lives),
		})
	}

	if m := md.checkFeedingFrenzy(stats); m != nil {
		milestones = append(milestones, *m)
	}

	if stats.Lives <= 0 && !md.gameOverSeen {
		md.gameOverSeen = true
		milestones = append(milestones, Milestone{
			Type:        MilestoneGameOver,
			Tick:        tick,
			Description: fmt.Sprintf("Game over with score %d and %d points", stats.Score, stats.Points),
		})
	}

	md.addToHistory(stats)

	return milestones
}

func (md *MilestoneDetector) addToHistory(stats WindowStats) {
	md.history[md.historyIdx] = stats
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}
}

func (md *MilestoneDetector) getHistory() []WindowStats {
	if md.historyFull {
		return md.history
	}
	return md.history[:md.historyIdx]
}

// checkFeedingFrenzy fires when eats in a window exceed twice the rolling average.
func (md *MilestoneDetector) checkFeedingFrenzy(stats WindowStats) *Milestone {
	history := md.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Eats
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Eats) > avg*2.0 && stats.Eats >= 5 {
		return &Milestone{
			Type:        MilestoneFeedingFrenzy,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Ate %d fish, %.1fx average (%.1f)", stats.Eats, float64(stats.Eats)/avg, avg),
		}
	}

	return nil
}
