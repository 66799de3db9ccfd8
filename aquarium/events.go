package aquarium

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
)

// EventType identifies game events.
type EventType uint8

const (
	EventCollision EventType = iota
	EventGameOver
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventCollision:
		return "collision"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event reports something that happened between the player and another
// participant. It references participants; it never owns them.
type Event struct {
	Type     EventType
	Player   *Player
	Creature ecs.Entity
	// HasCreature is false when there is no second participant (game over).
	HasCreature bool
}

// NewCollisionEvent creates a collision between the player and creature e.
func NewCollisionEvent(p *Player, e ecs.Entity) *Event {
	return &Event{Type: EventCollision, Player: p, Creature: e, HasCreature: true}
}

// NewGameOverEvent creates the terminal game over event.
func NewGameOverEvent(p *Player) *Event {
	return &Event{Type: EventGameOver, Player: p}
}

// IsCollision reports whether this is a collision event.
func (e *Event) IsCollision() bool {
	return e != nil && e.Type == EventCollision
}

// IsGameOver reports whether this is the game over event.
func (e *Event) IsGameOver() bool {
	return e != nil && e.Type == EventGameOver
}

// LogValue implements slog.LogValuer for structured logging.
func (e *Event) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("type", e.Type.String())}
	if e.Player != nil {
		attrs = append(attrs,
			slog.Float64("player_x", e.Player.X()),
			slog.Float64("player_y", e.Player.Y()),
			slog.Int("lives", e.Player.Lives()),
		)
	}
	if e.HasCreature {
		attrs = append(attrs, slog.Uint64("creature", uint64(e.Creature.ID())))
	}
	return slog.GroupValue(attrs...)
}
