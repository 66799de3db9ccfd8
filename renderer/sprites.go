// Package renderer draws the aquarium with raylib.
package renderer

import (
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishbowl/components"
	"github.com/pthm-cable/fishbowl/config"
)

// fallbackColors are used when a sprite image is missing.
var fallbackColors = map[components.Kind]rl.Color{
	components.KindBase:   {R: 240, G: 170, B: 60, A: 255},
	components.KindBigger: {R: 90, G: 130, B: 220, A: 255},
	components.KindPink:   {R: 240, G: 120, B: 180, A: 255},
	components.KindShark:  {R: 140, G: 150, B: 160, A: 255},
	components.KindPlayer: {R: 120, G: 220, B: 120, A: 255},
}

var powerUpColor = rl.Color{R: 255, G: 230, B: 80, A: 255}

// TextureSprite draws a texture, or a colored circle when none was loaded.
// (x, y) is the top-left corner of the sprite.
type TextureSprite struct {
	tex    rl.Texture2D
	loaded bool
	w, h   float32
	color  rl.Color
}

// Draw implements components.Sprite.
func (s *TextureSprite) Draw(x, y float64, opts components.DrawOptions) {
	scale := float32(opts.Scale)
	if scale == 0 {
		scale = 1
	}
	w := s.w * scale
	h := s.h * scale

	if !s.loaded {
		c := s.color
		if opts.Damaged {
			c = rl.Red
		}
		rl.DrawCircleV(rl.Vector2{X: float32(x) + w/2, Y: float32(y) + h/2}, w/2, c)
		return
	}

	tint := rl.White
	if opts.Damaged {
		tint = rl.Red
	}
	src := rl.Rectangle{Width: float32(s.tex.Width), Height: float32(s.tex.Height)}
	if opts.Flipped {
		src.Width = -src.Width
	}
	dst := rl.Rectangle{X: float32(x), Y: float32(y), Width: w, Height: h}
	rl.DrawTexturePro(s.tex, src, dst, rl.Vector2{}, 0, tint)
}

// SpriteCache owns one texture per creature kind plus the player and
// power-up images. Creatures of a kind share the same TextureSprite.
type SpriteCache struct {
	kinds   map[components.Kind]*TextureSprite
	player  *TextureSprite
	powerUp *TextureSprite
	log     *slog.Logger
}

// NewSpriteCache loads every sprite named in cfg.
// Must be called after the raylib window is created.
func NewSpriteCache(cfg *config.Config, log *slog.Logger) *SpriteCache {
	if log == nil {
		log = slog.Default()
	}
	c := &SpriteCache{
		kinds: make(map[components.Kind]*TextureSprite),
		log:   log,
	}
	for _, k := range components.NPCKinds() {
		cc, ok := cfg.Creatures[k.Key()]
		if !ok {
			continue
		}
		c.kinds[k] = c.load(cc.Sprite, cc.SpriteW, cc.SpriteH, fallbackColors[k])
	}
	pc := cfg.Player
	c.player = c.load(pc.Sprite, pc.SpriteW, pc.SpriteH, fallbackColors[components.KindPlayer])
	pu := cfg.PowerUp
	c.powerUp = c.load(pu.Sprite, pu.SpriteSize, pu.SpriteSize, powerUpColor)
	return c
}

func (c *SpriteCache) load(path string, w, h int, fallback rl.Color) *TextureSprite {
	s := &TextureSprite{w: float32(w), h: float32(h), color: fallback}
	if path == "" {
		return s
	}
	if _, err := os.Stat(path); err != nil {
		c.log.Warn("sprite missing, drawing placeholder", "path", path, "error", err)
		return s
	}
	s.tex = rl.LoadTexture(path)
	s.loaded = s.tex.ID != 0
	return s
}

// Sprite implements aquarium.SpriteProvider. Unknown kinds get nil.
func (c *SpriteCache) Sprite(k components.Kind) components.Sprite {
	if s, ok := c.kinds[k]; ok {
		return s
	}
	return nil
}

// Player returns the player sprite.
func (c *SpriteCache) Player() components.Sprite { return c.player }

// PowerUp returns the power-up sprite.
func (c *SpriteCache) PowerUp() components.Sprite { return c.powerUp }

// Unload frees GPU resources.
func (c *SpriteCache) Unload() {
	all := []*TextureSprite{c.player, c.powerUp}
	for _, s := range c.kinds {
		all = append(all, s)
	}
	for _, s := range all {
		if s != nil && s.loaded {
			rl.UnloadTexture(s.tex)
			s.loaded = false
		}
	}
}
