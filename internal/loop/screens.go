package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// drawScene paints the playfield for snap onto the canvas.
func drawScene(c *draw.Canvas, snap *Snapshot) {
	for _, st := range snap.Stars {
		c.FillRect(st.Rect, starColors[st.Shade])
	}

	if snap.GameState != GameStatePlaying {
		return
	}

	// HUD band and separator
	band := physics.NewRect(0, 0, snap.Screen.W, snap.TopBand)
	c.FillRect(band, draw.ColorGray)
	c.FillRect(physics.NewRect(0, snap.TopBand, snap.Screen.W, dividerHeight), draw.ColorDivider)
	for i := 0; i < snap.Lives; i++ {
		marker := physics.NewRect(lifeMarkerX+i*lifeMarkerStep, snap.TopBand-lifeMarkerRise, lifeMarkerW, lifeMarkerH)
		c.FillRect(marker, draw.ColorRed)
	}

	for _, e := range snap.Enemies {
		if e.Alive {
			c.FillRect(e.Rect, enemyColors[e.Color%object.PaletteSize])
		}
	}

	ship := draw.ColorGreen
	if snap.PlayerFlashing {
		ship = draw.ColorYellow
	}
	c.FillRect(snap.Player, ship)

	for _, b := range snap.PlayerBullets {
		c.FillRect(b, draw.ColorWhite)
	}
	for _, b := range snap.EnemyBullets {
		c.FillRect(b, draw.ColorRed)
	}
}

// drawUI writes the text overlay for the current screen.
func (v *view) drawUI(snap *Snapshot, now time.Time) {
	switch snap.GameState {
	case GameStateMenu:
		v.drawMenu(snap, now)
	case GameStatePlaying:
		v.drawPlayingHUD(snap)
	case GameStateGameOver:
		v.drawGameOver(snap)
	}
}

// label draws text centred on a logical position.
func (v *view) label(x, y int, value string, c draw.Color, bold bool) {
	col, row := v.canvas.LogicalToTerminal(float64(x), float64(y))
	t := draw.Centered(col, row, value, c)
	t.Bold = bold
	t.Draw(v.cw, v.palette, v.canvas)
}

// drawMenu draws the title screen.
func (v *view) drawMenu(snap *Snapshot, now time.Time) {
	cx, cy := snap.Screen.W/2, snap.Screen.H/2
	v.label(cx, cy-80, title, draw.ColorYellow, true)

	_, row := v.canvas.LogicalToTerminal(float64(cx), float64(cy))
	col := v.canvas.TerminalWidth() / 2
	for i, line := range controlLines {
		t := draw.Centered(col, row+i, line, draw.ColorWhite)
		t.Draw(v.cw, v.palette, v.canvas)
	}

	if object.BlinkOn(now, promptBlinkPeriod) {
		v.label(cx, cy+120, startPrompt, draw.ColorPurple, true)
	}
}

// drawPlayingHUD draws title, level and score inside the top band.
func (v *view) drawPlayingHUD(snap *Snapshot) {
	y := snap.TopBand / 2
	v.label(hudTextInset, y, title, draw.ColorWhite, false)
	v.label(snap.Screen.W/2, y, fmt.Sprintf("Level: %d", snap.Level), draw.ColorWhite, false)
	v.label(snap.Screen.W-hudTextInset, y, fmt.Sprintf("Score: %d", snap.Score), draw.ColorYellow, false)
}

// drawGameOver draws the final score and restart prompt.
func (v *view) drawGameOver(snap *Snapshot) {
	cx, cy := snap.Screen.W/2, snap.Screen.H/2
	v.label(cx, cy-40, "GAME OVER", draw.ColorRed, true)
	v.label(cx, cy+20, fmt.Sprintf("Final score: %d", snap.Score), draw.ColorYellow, false)
	v.label(cx, cy+80, "Press ENTER to return to the menu", draw.ColorWhite, false)
}
