package object

import (
	"github.com/tomz197/invaders/internal/physics"
)

// Bullets is a set of projectiles owned by one side. A projectile has no
// identity beyond its rectangle.
type Bullets []physics.Rect

// Advance moves every projectile vertically by dy (negative is up).
func (b Bullets) Advance(dy int) {
	for i := range b {
		b[i].Y += dy
	}
}

// Cull returns a new set holding only the projectiles still touching screen.
// The receiver is left untouched.
func (b Bullets) Cull(screen physics.Rect) Bullets {
	kept := make(Bullets, 0, len(b))
	for _, r := range b {
		if r.InBounds(screen) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Without returns a new set with the projectile at index i removed.
func (b Bullets) Without(i int) Bullets {
	kept := make(Bullets, 0, len(b))
	kept = append(kept, b[:i]...)
	return append(kept, b[i+1:]...)
}
