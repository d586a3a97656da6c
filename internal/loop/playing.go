package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

// updatePlaying runs one gameplay tick. Steps run in a fixed order; a tick
// that ends the game stops where the game ended.
func (s *State) updatePlaying(in input.Input, now time.Time, elapsed time.Duration) {
	s.Player.Update(in.Left, in.Right, now, elapsed)
	if in.Fire {
		s.Player.Shoot(now, &s.PlayerBullets)
	}

	s.PlayerBullets.Advance(-s.tuning.Bullet.Speed)
	s.PlayerBullets = s.PlayerBullets.Cull(s.screen)

	if !s.updateFormation() {
		return
	}

	s.Formation.MaybeFire(&s.EnemyBullets)
	s.EnemyBullets.Advance(int(s.Formation.BulletSpeed))
	s.EnemyBullets = s.EnemyBullets.Cull(s.screen)

	s.resolvePlayerHits()
	s.resolveEnemyHits()
}

// updateFormation moves the wave and applies its outcome. It returns false
// if the game ended.
func (s *State) updateFormation() bool {
	switch s.Formation.Update() {
	case object.OutcomeCleared:
		s.nextLevel()
	case object.OutcomeReachedBottom:
		s.Player.Hit()
		s.logger.Debug("formation reached the danger line", "lives", s.Player.Lives)
		if s.Player.Lives <= 0 {
			s.gameOver("invaded")
			return false
		}
		s.Formation.Nudge(-s.tuning.Session.RescueOffset)
	}
	return true
}
