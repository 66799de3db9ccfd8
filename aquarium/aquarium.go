// Package aquarium owns the creatures, power-ups and levels of a game session.
package aquarium

import (
	"errors"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/config"
	"github.com/pthm-cable/fishbowl/level"
	"github.com/pthm-cable/fishbowl/systems"
)

// ErrNoLevels is returned when level selection is attempted with no levels registered.
var ErrNoLevels = errors.New("aquarium: no levels registered")

// SpriteProvider hands out the sprite for a creature kind.
// It returns nil for kinds it has no image for.
type SpriteProvider interface {
	Sprite(k components.Kind) components.Sprite
}

// Listener observes aquarium population changes. All methods are optional
// side channels; the aquarium never depends on them.
type Listener interface {
	RecordSpawn(k components.Kind)
	RecordLevelUp(index int, name string)
}

// Species holds the fixed stats of an NPC kind.
type Species struct {
	Radius float64
	Value  int
}

// DefaultSpecies returns the stock NPC stats.
func DefaultSpecies() map[components.Kind]Species {
	return map[components.Kind]Species{
		components.KindBase:   {Radius: 30, Value: 1},
		components.KindBigger: {Radius: 60, Value: 5},
		components.KindPink:   {Radius: 30, Value: 2},
		components.KindShark:  {Radius: 45, Value: 10},
	}
}

// Options configures a new Aquarium.
type Options struct {
	Width, Height int
	Margin        int // creatures bounce inside (Width-Margin, Height-Margin)
	MinSpeed      int
	MaxSpeed      int // inclusive
	Species       map[components.Kind]Species
	Tuning        systems.Tuning
	Sprites       SpriteProvider // nil = no sprites (headless)
	RNG           systems.RNG
	Logger        *slog.Logger // nil = slog.Default()
	Listener      Listener     // optional
}

// OptionsFromConfig fills Options from the loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	species := DefaultSpecies()
	for _, k := range components.NPCKinds() {
		if cc, ok := cfg.Creatures[k.Key()]; ok {
			species[k] = Species{Radius: cc.Radius, Value: cc.Value}
		}
	}
	return Options{
		Width:    cfg.Derived.AquariumW,
		Height:   cfg.Derived.AquariumH,
		Margin:   cfg.Aquarium.BoundsMargin,
		MinSpeed: cfg.Spawn.MinSpeed,
		MaxSpeed: cfg.Spawn.MaxSpeed,
		Species:  species,
		Tuning:   systems.TuningFromConfig(cfg),
	}
}

// Aquarium is the creature and power-up registry and the level driver.
// Creatures are ECS entities; spawn order is kept in a separate slice
// because collision tie-breaks depend on it.
type Aquarium struct {
	world  *ecs.World
	mapper *ecs.Map6[
		components.Position,
		components.Motion,
		components.Bounds,
		components.Body,
		components.Creature,
		components.Appearance,
	]
	bobMap  *ecs.Map[components.Bob]
	dashMap *ecs.Map[components.Dash]

	creatures []ecs.Entity
	powerUps  []*PowerUp
	levels    []*level.Level

	// currentLevel only grows; the selected level is currentLevel mod len(levels).
	currentLevel int

	width, height int
	margin        int
	minSpeed      int
	maxSpeed      int
	species       map[components.Kind]Species
	tuning        systems.Tuning
	sprites       SpriteProvider
	rng           systems.RNG
	log           *slog.Logger
	listener      Listener

	warnedNoLevels bool
}

// New creates an empty aquarium.
func New(opts Options) *Aquarium {
	world := ecs.NewWorld()

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Species == nil {
		opts.Species = DefaultSpecies()
	}
	if opts.MinSpeed < 1 {
		opts.MinSpeed = 1
	}
	if opts.MaxSpeed < opts.MinSpeed {
		opts.MaxSpeed = opts.MinSpeed
	}
	if opts.Tuning.SpeedMul[components.KindBase] == 0 {
		opts.Tuning = systems.DefaultTuning()
	}

	return &Aquarium{
		world: world,
		mapper: ecs.NewMap6[
			components.Position,
			components.Motion,
			components.Bounds,
			components.Body,
			components.Creature,
			components.Appearance,
		](world),
		bobMap:   ecs.NewMap[components.Bob](world),
		dashMap:  ecs.NewMap[components.Dash](world),
		width:    opts.Width,
		height:   opts.Height,
		margin:   opts.Margin,
		minSpeed: opts.MinSpeed,
		maxSpeed: opts.MaxSpeed,
		species:  opts.Species,
		tuning:   opts.Tuning,
		sprites:  opts.Sprites,
		rng:      opts.RNG,
		log:      opts.Logger,
		listener: opts.Listener,
	}
}

// Width returns the aquarium width.
func (a *Aquarium) Width() int { return a.width }

// Height returns the aquarium height.
func (a *Aquarium) Height() int { return a.height }

// Bounds returns the box creatures bounce inside.
func (a *Aquarium) Bounds() components.Bounds {
	return components.Bounds{
		MaxX: float64(a.width - a.margin),
		MaxY: float64(a.height - a.margin),
	}
}

// AddCreature registers a new NPC at (x, y) and returns its entity.
// The creature's bounds are set to the aquarium bounds minus the margin.
// Kinds without species stats are logged and rejected.
func (a *Aquarium) AddCreature(k components.Kind, x, y float64, speed int) (ecs.Entity, bool) {
	sp, ok := a.species[k]
	if !ok {
		a.log.Error("unknown creature type to add", "kind", k.String())
		return ecs.Entity{}, false
	}

	var sprite components.Sprite
	if a.sprites != nil {
		sprite = a.sprites.Sprite(k)
	}

	pos := components.Position{X: x, Y: y}
	mot := components.Motion{Speed: speed}
	bounds := a.Bounds()
	body := components.Body{Radius: sp.Radius}
	cr := components.Creature{Kind: k, Value: sp.Value}
	look := components.Appearance{Sprite: sprite}

	var dash components.Dash
	switch k {
	case components.KindPink:
		systems.SetDirection(&mot, 1, 0)
	case components.KindShark:
		systems.InitShark(&a.tuning, a.rng, &mot, &dash)
	default:
		mot.DX, mot.DY = systems.RandomDirection(a.rng)
	}

	e := a.mapper.NewEntity(&pos, &mot, &bounds, &body, &cr, &look)

	switch k {
	case components.KindPink:
		a.bobMap.Add(e, &components.Bob{})
	case components.KindShark:
		a.dashMap.Add(e, &dash)
	}

	a.creatures = append(a.creatures, e)
	return e, true
}

// SpawnCreature adds a creature of kind k at a random position with a random speed.
// Unknown kinds are logged and ignored.
func (a *Aquarium) SpawnCreature(k components.Kind) (ecs.Entity, bool) {
	if _, ok := a.species[k]; !ok {
		a.log.Error("unknown creature type to spawn", "kind", k.String())
		return ecs.Entity{}, false
	}

	x := float64(a.rng.Intn(max(a.width, 1)))
	y := float64(a.rng.Intn(max(a.height, 1)))
	speed := a.minSpeed + a.rng.Intn(a.maxSpeed-a.minSpeed+1)

	e, _ := a.AddCreature(k, x, y, speed)
	if a.listener != nil {
		a.listener.RecordSpawn(k)
	}
	a.log.Debug("spawned creature", "kind", k.String(), "x", x, "y", y, "speed", speed)
	return e, true
}

// RemoveCreature despawns e and credits the selected level with eating it.
// Entities not in the aquarium are ignored.
func (a *Aquarium) RemoveCreature(e ecs.Entity) {
	idx := a.indexOf(e)
	if idx < 0 {
		a.log.Debug("remove of unknown creature ignored", "entity", e.ID())
		return
	}

	if lvl := a.CurrentLevel(); lvl != nil {
		_, _, _, _, cr, _ := a.mapper.Get(e)
		lvl.ConsumePopulation(cr.Kind, cr.Value)
	}

	a.world.RemoveEntity(e)
	a.creatures = append(a.creatures[:idx], a.creatures[idx+1:]...)
	a.log.Debug("removed creature", "entity", e.ID())
}

// ClearCreatures despawns every creature. Power-ups are kept.
func (a *Aquarium) ClearCreatures() {
	for _, e := range a.creatures {
		a.world.RemoveEntity(e)
	}
	a.creatures = a.creatures[:0]
}

func (a *Aquarium) indexOf(e ecs.Entity) int {
	for i, c := range a.creatures {
		if c == e {
			return i
		}
	}
	return -1
}

// CreatureCount returns the number of live creatures.
func (a *Aquarium) CreatureCount() int {
	return len(a.creatures)
}

// CreatureAt returns the i-th creature in spawn order.
func (a *Aquarium) CreatureAt(i int) (ecs.Entity, bool) {
	if i < 0 || i >= len(a.creatures) {
		return ecs.Entity{}, false
	}
	return a.creatures[i], true
}

// Contains reports whether e is a live creature of this aquarium.
func (a *Aquarium) Contains(e ecs.Entity) bool {
	return a.indexOf(e) >= 0
}

// CreatureView is a read-only snapshot of a creature.
type CreatureView struct {
	Entity  ecs.Entity
	Kind    components.Kind
	Value   int
	X, Y    float64
	DX, DY  float64
	Speed   int
	Radius  float64
	Bounds  components.Bounds
	Flipped bool
	Bob     *components.Bob
	Dash    *components.Dash
}

// Creature returns a snapshot of e, or false if e is not in the aquarium.
func (a *Aquarium) Creature(e ecs.Entity) (CreatureView, bool) {
	if !a.Contains(e) {
		return CreatureView{}, false
	}
	pos, mot, bounds, body, cr, look := a.mapper.Get(e)
	v := CreatureView{
		Entity:  e,
		Kind:    cr.Kind,
		Value:   cr.Value,
		X:       pos.X,
		Y:       pos.Y,
		DX:      mot.DX,
		DY:      mot.DY,
		Speed:   mot.Speed,
		Radius:  body.Radius,
		Bounds:  *bounds,
		Flipped: look.Flipped,
	}
	if a.bobMap.Has(e) {
		b := *a.bobMap.Get(e)
		v.Bob = &b
	}
	if a.dashMap.Has(e) {
		d := *a.dashMap.Get(e)
		v.Dash = &d
	}
	return v, true
}

// Creatures returns snapshots of every creature in spawn order.
func (a *Aquarium) Creatures() []CreatureView {
	out := make([]CreatureView, 0, len(a.creatures))
	for _, e := range a.creatures {
		if v, ok := a.Creature(e); ok {
			out = append(out, v)
		}
	}
	return out
}

// HasKind reports whether any live creature is of kind k.
func (a *Aquarium) HasKind(k components.Kind) bool {
	for _, e := range a.creatures {
		_, _, _, _, cr, _ := a.mapper.Get(e)
		if cr.Kind == k {
			return true
		}
	}
	return false
}

// swimmer gathers the components of e for the movers.
func (a *Aquarium) swimmer(e ecs.Entity) systems.Swimmer {
	pos, mot, bounds, _, cr, look := a.mapper.Get(e)
	s := systems.Swimmer{
		Kind:   cr.Kind,
		Pos:    pos,
		Mot:    mot,
		Bounds: *bounds,
		Look:   look,
	}
	if a.bobMap.Has(e) {
		s.Bob = a.bobMap.Get(e)
	}
	if a.dashMap.Has(e) {
		s.Dash = a.dashMap.Get(e)
	}
	return s
}

// Update moves every creature one tick, then repopulates.
func (a *Aquarium) Update() {
	for _, e := range a.creatures {
		systems.Move(&a.tuning, a.rng, a.swimmer(e))
	}

	if err := a.Repopulate(); err != nil {
		if !a.warnedNoLevels {
			a.log.Error("repopulate skipped", "error", err)
			a.warnedNoLevels = true
		}
	}
}

// Draw renders creatures, then power-ups on top.
func (a *Aquarium) Draw() {
	for _, e := range a.creatures {
		pos, _, _, _, _, look := a.mapper.Get(e)
		if look.Sprite != nil {
			look.Sprite.Draw(pos.X, pos.Y, components.DrawOptions{Flipped: look.Flipped})
		}
	}
	for _, pu := range a.powerUps {
		pu.Draw()
	}
}
