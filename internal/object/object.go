// Package object holds the simulated entities: the player ship, the enemy
// formation, and the two projectile sets.
package object

import (
	"time"

	"github.com/tomz197/invaders/internal/physics"
)

// ScreenRect returns the visible playfield as a rectangle at the origin.
func ScreenRect(width, height int) physics.Rect {
	return physics.Rect{W: width, H: height}
}

// BlinkOn reports whether a blinking object is in its visible half-period.
// The phase is taken from wall-clock time, not from tick counts.
func BlinkOn(now time.Time, period time.Duration) bool {
	if period <= 0 {
		return true
	}
	phase := now.UnixMilli() / period.Milliseconds()
	return phase%2 == 0
}
