package loop

import "github.com/tomz197/invaders/internal/object"

// pointsPerKill returns the score for one enemy at the current level.
func (s *State) pointsPerKill() int {
	return s.tuning.Session.PointsBase + (s.Level-1)*s.tuning.Session.PointsPerLevel
}

// resolvePlayerHits matches each player bullet against alive enemies in
// formation order. A bullet kills at most the first enemy it touches and is
// spent; bullets that hit nothing fly on.
func (s *State) resolvePlayerHits() {
	if len(s.PlayerBullets) == 0 {
		return
	}

	kept := make(object.Bullets, 0, len(s.PlayerBullets))
	killed := false
	for _, b := range s.PlayerBullets {
		hit := false
		for i := range s.Formation.Enemies {
			e := &s.Formation.Enemies[i]
			if e.Alive && b.Intersects(e.Rect) {
				e.Alive = false
				s.Score += s.pointsPerKill()
				hit = true
				break
			}
		}
		if hit {
			killed = true
			continue
		}
		kept = append(kept, b)
	}
	s.PlayerBullets = kept

	if killed {
		s.Formation.RecalcBounds()
	}
}

// resolveEnemyHits applies at most one enemy bullet to the player per tick.
// When the hit costs a life, every other enemy bullet at or below the safety
// line above the ship is dropped too.
func (s *State) resolveEnemyHits() {
	for i, b := range s.EnemyBullets {
		if !b.Intersects(s.Player.Rect) {
			continue
		}

		remaining := s.EnemyBullets.Without(i)
		if s.Player.Hit() {
			line := s.Player.Rect.Y - s.tuning.Session.SafetyMargin
			kept := remaining[:0]
			for _, eb := range remaining {
				if eb.Y < line {
					kept = append(kept, eb)
				}
			}
			remaining = kept
			s.logger.Debug("player hit", "lives", s.Player.Lives)
		}
		s.EnemyBullets = remaining

		if s.Player.Lives <= 0 {
			s.gameOver("shot down")
		}
		return
	}
}
