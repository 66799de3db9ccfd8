// Package level models per-level creature quotas and scoring.
package level

import (
	"fmt"

	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/config"
)

// PopulationNode is a creature quota inside a level.
// Current never exceeds Target except through direct mutation.
type PopulationNode struct {
	Kind    components.Kind
	Target  int
	Current int
}

// Deficit returns how many creatures must be spawned to meet the quota.
func (n *PopulationNode) Deficit() int {
	if d := n.Target - n.Current; d > 0 {
		return d
	}
	return 0
}

// Level is an ordered set of population quotas plus a score goal.
// Levels live for the whole session and are reset, not recreated.
type Level struct {
	Name        string
	Nodes       []*PopulationNode
	TargetScore int
	score       int
}

// New creates a level with the given target score and no quotas.
func New(name string, targetScore int) *Level {
	return &Level{Name: name, TargetScore: targetScore}
}

// AddPopulation appends a quota of count creatures of kind k.
func (l *Level) AddPopulation(k components.Kind, count int) *Level {
	l.Nodes = append(l.Nodes, &PopulationNode{Kind: k, Target: count})
	return l
}

// FromConfig builds the level list described by cfg.
func FromConfig(cfg *config.Config) ([]*Level, error) {
	levels := make([]*Level, 0, len(cfg.Levels))
	for i, lc := range cfg.Levels {
		name := lc.Name
		if name == "" {
			name = fmt.Sprintf("level_%d", i)
		}
		lvl := New(name, lc.TargetScore)
		for _, pc := range lc.Population {
			k, ok := components.ParseKind(pc.Kind)
			if !ok || k == components.KindPlayer {
				return nil, fmt.Errorf("level %s: unknown creature kind %q", name, pc.Kind)
			}
			lvl.AddPopulation(k, pc.Count)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// Score returns the value eaten so far in this level.
func (l *Level) Score() int {
	return l.score
}

// IsCompleted reports whether the score goal has been reached.
func (l *Level) IsCompleted() bool {
	return l.score >= l.TargetScore
}

// ConsumePopulation records that a creature of kind k worth value was eaten.
// The first node of that kind is decremented and the value added to the score.
// A node already at zero is left alone so despawned slots are not double counted.
func (l *Level) ConsumePopulation(k components.Kind, value int) {
	for _, n := range l.Nodes {
		if n.Kind != k {
			continue
		}
		if n.Current == 0 {
			return
		}
		n.Current--
		l.score += value
		return
	}
}

// Repopulate returns one kind entry per creature missing from each quota,
// in node order, and marks every quota as full.
func (l *Level) Repopulate() []components.Kind {
	var out []components.Kind
	for _, n := range l.Nodes {
		d := n.Deficit()
		for i := 0; i < d; i++ {
			out = append(out, n.Kind)
		}
		n.Current += d
	}
	return out
}

// PopulationReset zeroes every quota's current population.
func (l *Level) PopulationReset() {
	for _, n := range l.Nodes {
		n.Current = 0
	}
}

// LevelReset clears the score and population so the level can be replayed.
func (l *Level) LevelReset() {
	l.score = 0
	l.PopulationReset()
}

// Node returns the first quota for kind k, or nil.
func (l *Level) Node(k components.Kind) *PopulationNode {
	for _, n := range l.Nodes {
		if n.Kind == k {
			return n
		}
	}
	return nil
}
