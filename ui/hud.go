package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Score        int
	Power        int
	Lives        int
	LevelName    string
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the score panel in the top-right corner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders Score, Power and Lives text followed by one dot per life.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x := data.ScreenWidth - 150

	y := r.DrawLabelValue(x, 20, "Score", fmt.Sprint(data.Score))
	y = r.DrawLabelValue(x, y, "Power", fmt.Sprint(data.Power))
	r.DrawLabelValue(x, y, "Lives", fmt.Sprint(data.Lives))

	for i := int32(0); i < int32(data.Lives); i++ {
		rl.DrawCircle(x+i*20, 50, 5, r.Theme.LifeColor)
	}

	if data.LevelName != "" {
		rl.DrawText(data.LevelName, 10, 10, 20, rl.LightGray)
	}
}

// GameOverPanel is the modal shown once the player runs out of lives.
type GameOverPanel struct {
	renderer *Renderer
	width    int32
	height   int32
}

// NewGameOverPanel creates a new game-over panel.
func NewGameOverPanel() *GameOverPanel {
	return &GameOverPanel{
		renderer: NewRenderer(),
		width:    300,
		height:   160,
	}
}

// Draw renders the panel centered on screen and reports whether Restart was clicked.
func (p *GameOverPanel) Draw(screenW, screenH int32, score, points int) bool {
	r := p.renderer
	x := (screenW - p.width) / 2
	y := (screenH - p.height) / 2
	cx := x + p.width/2

	r.DrawPanel(x, y, p.width, p.height)
	r.DrawCentered("GAME OVER", cx, y+r.Theme.Padding*2, r.Theme.HeaderFontSize, r.Theme.TitleColor)
	r.DrawCentered(fmt.Sprintf("Eaten: %d  Points: %d", score, points), cx, y+70, 16, r.Theme.LabelColor)

	btn := rl.Rectangle{X: float32(cx - 60), Y: float32(y + p.height - 50), Width: 120, Height: 30}
	return gui.Button(btn, "Restart")
}
