package object

import (
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Player is the ship at the bottom of the screen.
type Player struct {
	Rect         physics.Rect
	Lives        int
	LastShot     time.Time
	Invulnerable time.Duration // Remaining grace period after a hit
	Flashing     bool

	cfg    config.Player
	bullet config.Bullet
	screen config.Screen
}

// NewPlayer creates a ship centered at the bottom with a full set of lives.
func NewPlayer(t config.Tuning) *Player {
	p := &Player{
		Rect: physics.NewRect(
			t.Screen.Width/2-t.Player.Width/2,
			t.Screen.Height-t.Player.BottomOffset,
			t.Player.Width,
			t.Player.Height,
		),
		Lives:  t.Player.StartLives,
		cfg:    t.Player,
		bullet: t.Bullet,
		screen: t.Screen,
	}
	return p
}

// ResetPosition re-centers the ship horizontally.
func (p *Player) ResetPosition() {
	p.Rect.X = p.screen.Width/2 - p.Rect.W/2
}

// MinX returns the leftmost allowed ship position.
func (p *Player) MinX() int {
	return p.cfg.Margin
}

// MaxX returns the rightmost allowed ship position.
func (p *Player) MaxX() int {
	return p.screen.Width - p.cfg.Margin - p.Rect.W
}

// Update moves the ship and counts down invulnerability.
// Both directions are applied when both are held, left first.
func (p *Player) Update(left, right bool, now time.Time, elapsed time.Duration) {
	if left {
		p.Rect.X -= p.cfg.Speed
	}
	if right {
		p.Rect.X += p.cfg.Speed
	}
	p.Rect.X = physics.Clamp(p.Rect.X, p.MinX(), p.MaxX())

	if p.Invulnerable > 0 {
		p.Invulnerable = max(p.Invulnerable-elapsed, 0)
	}
	if p.Invulnerable > 0 {
		p.Flashing = BlinkOn(now, p.cfg.BlinkPeriod)
	} else {
		p.Flashing = false
	}
}

// CanShoot reports whether the fire cooldown has elapsed.
func (p *Player) CanShoot(now time.Time) bool {
	return now.Sub(p.LastShot) >= p.cfg.Cooldown
}

// Shoot appends a bullet centered above the ship if the cooldown allows.
// Returns true if a bullet was fired.
func (p *Player) Shoot(now time.Time, out *Bullets) bool {
	if !p.CanShoot(now) {
		return false
	}
	*out = append(*out, physics.NewRect(
		p.Rect.CenterX()-p.bullet.Width/2,
		p.Rect.Y-p.bullet.Height,
		p.bullet.Width,
		p.bullet.Height,
	))
	p.LastShot = now
	return true
}

// Hit applies one point of damage unless the ship is invulnerable.
// Returns true if a life was lost.
func (p *Player) Hit() bool {
	if p.Invulnerable > 0 {
		return false
	}
	p.Lives--
	p.Invulnerable = p.cfg.Invulnerability
	return true
}
