// Package telemetry provides game session tracking, milestones and CSV output.
package telemetry

import "github.com/pthm-cable/fishbowl/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventEat
	EventDamage
	EventBlockedHit
	EventPowerGain
	EventPowerUpSpawn
	EventPowerUpCollect
	EventLevelUp
	EventGameOver
)

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Tick int32
	Kind components.Kind

	// Optional fields depending on event type
	Amount int    // value eaten, power gained, or level index
	Label  string // level name
}

// NewSpawnEvent creates a creature spawn event.
func NewSpawnEvent(tick int32, kind components.Kind) Event {
	return Event{Type: EventSpawn, Tick: tick, Kind: kind}
}

// NewEatEvent creates an event for the player eating a creature worth value.
func NewEatEvent(tick int32, kind components.Kind, value int) Event {
	return Event{Type: EventEat, Tick: tick, Kind: kind, Amount: value}
}

// NewDamageEvent creates an event for the player losing a life to a creature.
func NewDamageEvent(tick int32, kind components.Kind) Event {
	return Event{Type: EventDamage, Tick: tick, Kind: kind}
}

// NewBlockedHitEvent creates an event for contact absorbed by damage immunity.
func NewBlockedHitEvent(tick int32, kind components.Kind) Event {
	return Event{Type: EventBlockedHit, Tick: tick, Kind: kind}
}

// NewPowerGainEvent creates an event for the player's power increasing.
func NewPowerGainEvent(tick int32, newPower int) Event {
	return Event{Type: EventPowerGain, Tick: tick, Kind: components.KindPlayer, Amount: newPower}
}

// NewPowerUpSpawnEvent creates a power-up spawn event.
func NewPowerUpSpawnEvent(tick int32) Event {
	return Event{Type: EventPowerUpSpawn, Tick: tick}
}

// NewPowerUpCollectEvent creates a power-up pickup event.
func NewPowerUpCollectEvent(tick int32) Event {
	return Event{Type: EventPowerUpCollect, Tick: tick, Kind: components.KindPlayer}
}

// NewLevelUpEvent creates a level transition event.
func NewLevelUpEvent(tick int32, index int, name string) Event {
	return Event{Type: EventLevelUp, Tick: tick, Amount: index, Label: name}
}

// NewGameOverEvent creates the terminal game over event.
func NewGameOverEvent(tick int32) Event {
	return Event{Type: EventGameOver, Tick: tick, Kind: components.KindPlayer}
}
