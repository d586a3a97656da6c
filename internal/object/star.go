package object

import (
	"math/rand"

	"github.com/tomz197/invaders/internal/physics"
)

// StarShades is the number of brightness levels a star can have.
const StarShades = 3

// Star is a static background speck.
type Star struct {
	Rect  physics.Rect
	Shade int // 0 dimmest .. StarShades-1 brightest
}

// NewStarfield scatters count 1-3 unit square stars over screen.
func NewStarfield(count int, screen physics.Rect, rng *rand.Rand) []Star {
	if count <= 0 || screen.W <= 0 || screen.H <= 0 {
		return nil
	}

	stars := make([]Star, count)
	for i := range stars {
		size := 1 + rng.Intn(3)
		stars[i] = Star{
			Rect:  physics.NewRect(screen.X+rng.Intn(screen.W), screen.Y+rng.Intn(screen.H), size, size),
			Shade: rng.Intn(StarShades),
		}
	}
	return stars
}
