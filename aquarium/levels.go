package aquarium

import "github.com/pthm-cable/fishbowl/level"

// AddLevel appends a level to the circular level list. Nil levels are ignored.
func (a *Aquarium) AddLevel(l *level.Level) {
	if l == nil {
		return
	}
	a.levels = append(a.levels, l)
}

// LevelCount returns the number of registered levels.
func (a *Aquarium) LevelCount() int {
	return len(a.levels)
}

// LevelIndex returns the selected level index (current counter mod level count).
// It returns -1 when no levels are registered.
func (a *Aquarium) LevelIndex() int {
	if len(a.levels) == 0 {
		return -1
	}
	return a.currentLevel % len(a.levels)
}

// LevelsCleared returns how many level transitions have happened.
func (a *Aquarium) LevelsCleared() int {
	return a.currentLevel
}

// CurrentLevel returns the selected level, or nil when none are registered.
func (a *Aquarium) CurrentLevel() *level.Level {
	idx := a.LevelIndex()
	if idx < 0 {
		return nil
	}
	return a.levels[idx]
}

// Repopulate advances to the next level when the selected one is complete,
// then spawns whatever the selected level is missing.
//
// On a level transition the finished level is reset for its next turn in the
// cycle and all creatures are cleared; power-ups are left in place.
func (a *Aquarium) Repopulate() error {
	lvl := a.CurrentLevel()
	if lvl == nil {
		return ErrNoLevels
	}

	if lvl.IsCompleted() {
		lvl.LevelReset()
		a.currentLevel++
		lvl = a.CurrentLevel()
		a.ClearCreatures()
		a.log.Info("new level reached", "index", a.LevelIndex(), "name", lvl.Name, "cleared", a.currentLevel)
		if a.listener != nil {
			a.listener.RecordLevelUp(a.LevelIndex(), lvl.Name)
		}
	}

	toSpawn := lvl.Repopulate()
	if len(toSpawn) == 0 {
		return nil
	}
	a.log.Debug("repopulating", "count", len(toSpawn), "level", lvl.Name)
	for _, k := range toSpawn {
		a.SpawnCreature(k)
	}
	return nil
}
