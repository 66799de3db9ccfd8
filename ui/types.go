// Package ui draws the HUD and the game-over panel on top of the aquarium.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	TitleColor     rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	LifeColor      rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		TitleColor:     rl.Yellow,
		LabelColor:     rl.White,
		ValueColor:     rl.White,
		LifeColor:      rl.Red,
		Padding:        10,
		LineHeight:     10,
		LabelWidth:     50,
		FontSize:       10,
		HeaderFontSize: 30,
	}
}
