package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/object"
)

// Presentation constants. Gameplay tuning lives in config.Tuning.

const title = "I N V A D E R S"

// Menu
const (
	promptBlinkPeriod = 600 * time.Millisecond
	startPrompt       = ">>  Press ENTER to start  <<"
)

var controlLines = []string{
	"A D / < >  . . . . .  Move",
	"W / Up / SPACE  . . . Fire",
	"Q  . . . . . . . . .  Quit",
}

// HUD
const (
	hudTextInset   = 160 // Logical x of the title and score label centres
	lifeMarkerX    = 16
	lifeMarkerW    = 18
	lifeMarkerH    = 10
	lifeMarkerStep = 22
	lifeMarkerRise = 26 // Distance from the band bottom to the marker top
	dividerHeight  = 2
)

// enemyColors maps an enemy's row palette index to a colour.
var enemyColors = [object.PaletteSize]draw.Color{
	draw.ColorBlue,
	draw.ColorPurple,
	draw.ColorRed,
	draw.ColorYellow,
	draw.ColorGreen,
}

// starColors maps star shade to colour, dimmest first.
var starColors = [object.StarShades]draw.Color{
	draw.ColorStarDim,
	draw.ColorStarMid,
	draw.ColorStarBright,
}
