package game

import "log/slog"

// Status is the HUD-facing summary of a session.
type Status struct {
	Score     int
	Points    int
	Power     int
	Lives     int
	Level     int
	LevelName string
	GameOver  bool
}

// Status returns the current HUD values.
func (s *Scene) Status() Status {
	st := Status{
		Score:    s.player.Score(),
		Points:   s.player.Points(),
		Power:    s.player.Power(),
		Lives:    s.player.Lives(),
		Level:    s.aq.LevelIndex(),
		GameOver: s.halted,
	}
	if lvl := s.aq.CurrentLevel(); lvl != nil {
		st.LevelName = lvl.Name
	}
	return st
}

// LogValue implements slog.LogValuer for structured logging.
func (st Status) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("score", st.Score),
		slog.Int("points", st.Points),
		slog.Int("power", st.Power),
		slog.Int("lives", st.Lives),
		slog.Int("level", st.Level),
		slog.String("level_name", st.LevelName),
		slog.Bool("game_over", st.GameOver),
	)
}

func (s *Scene) logGameOver() {
	eats, damage, levelUps := s.collector.Totals()
	s.log.Info("game over",
		"tick", s.tick,
		"status", s.Status(),
		"event", s.lastEvent,
		"total_eats", eats,
		"total_damage", damage,
		"level_ups", levelUps,
	)
}
