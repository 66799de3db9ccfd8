package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// KeyboardInput steers the player with the arrow keys or WASD.
type KeyboardInput struct{}

// Direction implements game.InputProvider.
func (KeyboardInput) Direction() (dx, dy float64) {
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		dx--
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		dx++
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		dy--
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		dy++
	}
	return dx, dy
}
