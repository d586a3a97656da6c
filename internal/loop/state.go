package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateMenu     GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Out of lives, waiting for confirm
)

func (g GameState) String() string {
	switch g {
	case GameStateMenu:
		return "menu"
	case GameStatePlaying:
		return "playing"
	case GameStateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// State is one game session. It is owned by a single frame driver and is
// not safe for concurrent use.
type State struct {
	GameState     GameState
	Level         int
	Score         int
	Player        *object.Player
	Formation     *object.Formation
	PlayerBullets object.Bullets
	EnemyBullets  object.Bullets
	Stars         []object.Star
	Running       bool // False once quit was requested

	tuning config.Tuning
	screen physics.Rect
	rng    *rand.Rand
	logger *log.Logger
}

// Options configures a new State. Zero values pick sensible defaults.
type Options struct {
	Rand   *rand.Rand  // Drives enemy fire and the starfield; seeded from the clock if nil
	Logger *log.Logger // Receives session events; discarded if nil
}

// NewState creates a session on the menu screen.
func NewState(t config.Tuning, opts Options) *State {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &State{
		GameState: GameStateMenu,
		Level:     1,
		Running:   true,
		tuning:    t,
		screen:    object.ScreenRect(t.Screen.Width, t.Screen.Height),
		rng:       rng,
		logger:    logger,
	}
	s.Player = object.NewPlayer(t)
	s.Formation = object.NewFormation(t, rng)
	s.Formation.SpawnWave(s.Level)
	s.Stars = object.NewStarfield(t.Session.Stars, s.screen, rng)
	return s
}

// Tuning returns the constants the session was created with.
func (s *State) Tuning() config.Tuning {
	return s.tuning
}

// Update runs one tick. now is the absolute clock used for cooldowns and
// blinking; elapsed is the time since the previous tick.
func (s *State) Update(in input.Input, now time.Time, elapsed time.Duration) {
	if in.Quit {
		s.Running = false
		return
	}

	switch s.GameState {
	case GameStateMenu:
		if in.Confirm {
			s.startGame()
		}
	case GameStatePlaying:
		s.updatePlaying(in, now, elapsed)
	case GameStateGameOver:
		if in.Confirm {
			s.GameState = GameStateMenu
			s.logger.Debug("back to menu")
		}
	}
}

// startGame performs a full reset and enters play.
func (s *State) startGame() {
	s.Level = 1
	s.Score = 0
	s.Player = object.NewPlayer(s.tuning)
	s.resetWave()
	s.GameState = GameStatePlaying
	rows, cols := s.Formation.GridSize(s.Level)
	s.logger.Info("game started", "rows", rows, "cols", cols)
}

// nextLevel advances to a fresh, harder wave keeping lives and score.
func (s *State) nextLevel() {
	s.Level++
	s.resetWave()
	s.logger.Info("level cleared", "level", s.Level, "score", s.Score)
}

// resetWave clears projectiles, spawns the wave for the current level and
// re-centres the ship.
func (s *State) resetWave() {
	s.PlayerBullets = nil
	s.EnemyBullets = nil
	s.Formation.SpawnWave(s.Level)
	s.Player.ResetPosition()
}

// gameOver ends the run.
func (s *State) gameOver(reason string) {
	s.GameState = GameStateGameOver
	s.logger.Info("game over", "reason", reason, "level", s.Level, "score", s.Score)
}
