// Package components defines ECS components for the aquarium.
package components

// Kind tags a creature variant.
type Kind uint8

const (
	KindBase Kind = iota
	KindBigger
	KindPink
	KindShark
	KindPlayer

	kindCount
)

var kindNames = [kindCount]string{"BaseFish", "BiggerFish", "PinkFish", "SharkFish", "Player"}

// kindKeys are the config keys for each kind.
var kindKeys = [kindCount]string{"base_fish", "bigger_fish", "pink_fish", "shark_fish", "player"}

// String returns the display name for a Kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "UnknownFish"
}

// Key returns the config key for a Kind.
func (k Kind) Key() string {
	if k < kindCount {
		return kindKeys[k]
	}
	return ""
}

// ParseKind maps a config key back to its Kind.
func ParseKind(key string) (Kind, bool) {
	for i, k := range kindKeys {
		if k == key {
			return Kind(i), true
		}
	}
	return 0, false
}

// NPCKinds lists every kind the aquarium can spawn.
func NPCKinds() []Kind {
	return []Kind{KindBase, KindBigger, KindPink, KindShark}
}

// Creature holds identity and food value.
type Creature struct {
	Kind  Kind
	Value int // power needed to eat it, and score awarded when eaten
}

// Bob holds the pink fish swim wave phase.
type Bob struct {
	Phase float64
}

// Dash holds the shark dash state machine.
// DashFrames > 0 means dashing; otherwise CooldownFrames counts down to the next dash roll.
type Dash struct {
	DashFrames     int
	CooldownFrames int
}
