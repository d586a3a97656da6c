package object

import (
	"math/rand"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/physics"
)

// PaletteSize is the number of row colours an enemy wave cycles through.
const PaletteSize = 5

// Enemy is one cell of the formation grid. Dead enemies stay in the
// formation so column math over the grid remains stable.
type Enemy struct {
	Rect  physics.Rect
	Alive bool
	Color int // Row palette index in [0, PaletteSize)
}

// Outcome is what a formation update reports to the session.
type Outcome int

const (
	OutcomeNone          Outcome = iota
	OutcomeCleared               // No enemies left alive
	OutcomeReachedBottom         // Bounds crossed the danger line
	OutcomeSteppedDown           // Bounced off a side margin this tick
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeReachedBottom:
		return "reached_bottom"
	case OutcomeSteppedDown:
		return "stepped_down"
	default:
		return "none"
	}
}

// Formation moves the current wave as one unit.
type Formation struct {
	Enemies     []Enemy
	Direction   int          // +1 right, -1 left
	Speed       float64      // Current horizontal speed, units per tick
	BaseSpeed   float64      // Speed the wave spawned with
	StepDown    int          // Descent on each bounce
	Bounds      physics.Rect // Minimal rectangle over alive enemies
	FireChance  float64      // Per shooter, per tick
	BulletSpeed float64

	cfg    config.Formation
	screen config.Screen
	bullet config.Bullet
	rng    *rand.Rand
}

// NewFormation creates an empty formation. rng drives enemy fire.
func NewFormation(t config.Tuning, rng *rand.Rand) *Formation {
	return &Formation{
		Direction: 1,
		cfg:       t.Formation,
		screen:    t.Screen,
		bullet:    t.Bullet,
		rng:       rng,
	}
}

// GridSize returns the rows and columns spawned for level.
func (f *Formation) GridSize(level int) (rows, cols int) {
	rows = f.cfg.BaseRows + min(level-1, f.cfg.MaxExtraRows)
	cols = f.cfg.BaseCols + min((level-1)/2, f.cfg.MaxExtraCols)
	return rows, cols
}

// SpawnWave replaces the grid with a fresh wave scaled to level.
func (f *Formation) SpawnWave(level int) {
	level = max(level, 1)
	rows, cols := f.GridSize(level)

	ew, eh := f.cfg.EnemyWidth, f.cfg.EnemyHeight
	totalWidth := cols*ew + (cols-1)*f.cfg.HGap
	offsetX := max(f.screen.SideMargin, (f.screen.Width-totalWidth)/2)
	startY := f.screen.TopBand + f.cfg.StartOffset

	f.Enemies = f.Enemies[:0]
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			f.Enemies = append(f.Enemies, Enemy{
				Rect: physics.NewRect(
					offsetX+c*(ew+f.cfg.HGap),
					startY+r*(eh+f.cfg.VGap),
					ew, eh,
				),
				Alive: true,
				Color: r % PaletteSize,
			})
		}
	}

	step := float64(level - 1)
	f.Direction = 1
	f.BaseSpeed = f.cfg.BaseSpeed + f.cfg.SpeedPerLevel*step
	f.Speed = f.BaseSpeed
	f.StepDown = f.cfg.BaseStepDown + f.cfg.StepDownPerLevel*(level-1)
	f.FireChance = min(f.cfg.BaseFireChance+f.cfg.FireChancePerLevel*step, f.cfg.MaxFireChance)
	f.BulletSpeed = f.cfg.BaseBulletSpeed + f.cfg.BulletSpeedPerLevel*step
	f.RecalcBounds()
}

// RecalcBounds recomputes Bounds over alive enemies only.
func (f *Formation) RecalcBounds() {
	rects := make([]physics.Rect, 0, len(f.Enemies))
	for _, e := range f.Enemies {
		if e.Alive {
			rects = append(rects, e.Rect)
		}
	}
	f.Bounds = physics.BoundsOf(rects)
}

// AliveCount returns the number of enemies still alive.
func (f *Formation) AliveCount() int {
	n := 0
	for _, e := range f.Enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// DangerLine is the y-coordinate that ends the wave's descent.
func (f *Formation) DangerLine() int {
	return f.screen.Height - f.cfg.DangerOffset
}

// Update advances the formation by one tick.
func (f *Formation) Update() Outcome {
	alive := f.AliveCount()
	if alive == 0 {
		f.Bounds = physics.Rect{}
		return OutcomeCleared
	}

	dx := int(float64(f.Direction) * f.Speed)
	f.shift(dx, 0)

	stepped := false
	if f.Bounds.X <= f.screen.SideMargin || f.Bounds.Right() >= f.screen.Width-f.screen.SideMargin {
		f.Direction = -f.Direction
		f.shift(0, f.StepDown)
		stepped = true
	}

	f.blendSpeed(alive)

	if f.Bounds.Bottom() >= f.DangerLine() {
		return OutcomeReachedBottom
	}
	if stepped {
		return OutcomeSteppedDown
	}
	return OutcomeNone
}

// Nudge moves every alive enemy vertically by dy (negative is up).
func (f *Formation) Nudge(dy int) {
	f.shift(0, dy)
}

// shift moves alive enemies and refreshes the bounds.
func (f *Formation) shift(dx, dy int) {
	for i := range f.Enemies {
		if f.Enemies[i].Alive {
			f.Enemies[i].Rect.X += dx
			f.Enemies[i].Rect.Y += dy
		}
	}
	f.RecalcBounds()
}

// blendSpeed eases Speed toward the wave's base speed scaled by how much
// of the wave has been destroyed.
func (f *Formation) blendSpeed(alive int) {
	total := len(f.Enemies)
	destroyed := 1 - float64(alive)/float64(total)
	factor := min(1+destroyed*f.cfg.SpeedupSlope, f.cfg.MaxSpeedup)
	target := f.BaseSpeed * factor
	f.Speed = f.Speed*(1-f.cfg.SpeedBlend) + target*f.cfg.SpeedBlend
}

// ChooseShooters returns the frontmost alive enemy of every occupied
// column, in order of first appearance in the grid.
func (f *Formation) ChooseShooters() []*Enemy {
	pitch := f.cfg.Pitch()
	best := make(map[int]int)
	var order []int

	for i := range f.Enemies {
		e := &f.Enemies[i]
		if !e.Alive {
			continue
		}
		col := floorDiv(e.Rect.X, pitch)
		j, ok := best[col]
		if !ok {
			order = append(order, col)
			best[col] = i
			continue
		}
		if e.Rect.Y > f.Enemies[j].Rect.Y {
			best[col] = i
		}
	}

	shooters := make([]*Enemy, 0, len(order))
	for _, col := range order {
		shooters = append(shooters, &f.Enemies[best[col]])
	}
	return shooters
}

// MaybeFire rolls FireChance for each shooter and appends a bullet at the
// bottom-center of every one that fires. Returns the number fired.
func (f *Formation) MaybeFire(out *Bullets) int {
	fired := 0
	for _, s := range f.ChooseShooters() {
		if f.rng.Float64() >= f.FireChance {
			continue
		}
		*out = append(*out, physics.NewRect(
			s.Rect.CenterX()-f.bullet.Width/2,
			s.Rect.Bottom(),
			f.bullet.Width,
			f.bullet.Height,
		))
		fired++
	}
	return fired
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
