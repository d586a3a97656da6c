package loop

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// EnemyView is the drawable part of one enemy.
type EnemyView struct {
	Rect  physics.Rect
	Alive bool
	Color int
}

// Snapshot is an immutable copy of everything the presentation layer draws.
// It shares no memory with the live session.
type Snapshot struct {
	GameState      GameState
	Level          int
	Score          int
	Lives          int
	Player         physics.Rect
	PlayerFlashing bool
	Enemies        []EnemyView
	PlayerBullets  []physics.Rect
	EnemyBullets   []physics.Rect
	Stars          []object.Star
	Screen         physics.Rect
	TopBand        int
}

// Snapshot copies the current session for rendering.
func (s *State) Snapshot() *Snapshot {
	enemies := make([]EnemyView, len(s.Formation.Enemies))
	for i, e := range s.Formation.Enemies {
		enemies[i] = EnemyView{Rect: e.Rect, Alive: e.Alive, Color: e.Color}
	}

	return &Snapshot{
		GameState:      s.GameState,
		Level:          s.Level,
		Score:          s.Score,
		Lives:          s.Player.Lives,
		Player:         s.Player.Rect,
		PlayerFlashing: s.Player.Flashing,
		Enemies:        enemies,
		PlayerBullets:  append([]physics.Rect(nil), s.PlayerBullets...),
		EnemyBullets:   append([]physics.Rect(nil), s.EnemyBullets...),
		Stars:          append([]object.Star(nil), s.Stars...),
		Screen:         s.screen,
		TopBand:        s.tuning.Screen.TopBand,
	}
}
