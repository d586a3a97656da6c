package loop

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const tick = 16 * time.Millisecond

// newPlaying returns a session that has just left the menu, with enemy fire
// disabled so tests control every projectile.
func newPlaying(t *testing.T) *State {
	t.Helper()
	s := NewState(config.DefaultTuning(), Options{Rand: rand.New(rand.NewSource(1))})
	s.Update(input.Input{Confirm: true}, epoch, tick)
	if s.GameState != GameStatePlaying {
		t.Fatalf("GameState = %v after confirm, want playing", s.GameState)
	}
	s.Formation.FireChance = 0
	return s
}

func TestNewStateStartsInMenu(t *testing.T) {
	s := NewState(config.DefaultTuning(), Options{})
	if s.GameState != GameStateMenu || !s.Running {
		t.Fatalf("GameState = %v, Running = %v", s.GameState, s.Running)
	}
	if len(s.Stars) != 150 {
		t.Errorf("len(Stars) = %d, want 150", len(s.Stars))
	}

	// Gameplay keys do nothing on the menu.
	s.Update(input.Input{Fire: true, Left: true}, epoch, tick)
	if s.GameState != GameStateMenu || len(s.PlayerBullets) != 0 {
		t.Error("menu should ignore gameplay input")
	}
}

func TestWaveClearedAdvancesLevel(t *testing.T) {
	s := newPlaying(t)
	if len(s.Formation.Enemies) != 40 {
		t.Fatalf("level 1 wave has %d enemies, want 40", len(s.Formation.Enemies))
	}

	for i := 0; i < 39; i++ {
		s.Formation.Enemies[i].Alive = false
	}
	s.Update(input.Input{}, epoch.Add(tick), tick)
	if s.Level != 1 {
		t.Fatalf("Level = %d with one enemy alive, want 1", s.Level)
	}

	s.Formation.Enemies[39].Alive = false
	s.PlayerBullets = object.Bullets{{X: 600, Y: 400, W: 6, H: 16}}
	s.Update(input.Input{}, epoch.Add(2*tick), tick)

	if s.Level != 2 {
		t.Fatalf("Level = %d, want 2", s.Level)
	}
	if s.GameState != GameStatePlaying {
		t.Errorf("GameState = %v, want playing", s.GameState)
	}
	if got := s.Formation.AliveCount(); got < 4*10 || got != len(s.Formation.Enemies) {
		t.Errorf("new wave has %d/%d alive enemies", got, len(s.Formation.Enemies))
	}
	if len(s.PlayerBullets) != 0 {
		t.Errorf("player bullets not cleared: %v", s.PlayerBullets)
	}
	if s.Player.Lives != 3 {
		t.Errorf("Lives = %d, want 3", s.Player.Lives)
	}
}

func TestPartialResetRecentersPlayer(t *testing.T) {
	s := newPlaying(t)
	s.Score = 700
	s.Player.Rect.X = 40
	for i := range s.Formation.Enemies {
		s.Formation.Enemies[i].Alive = false
	}
	s.Update(input.Input{}, epoch.Add(tick), tick)

	if s.Player.Rect.X != 1280/2-70/2 {
		t.Errorf("player x = %d, want centred", s.Player.Rect.X)
	}
	if s.Score != 700 {
		t.Errorf("Score = %d, partial reset must keep it", s.Score)
	}
}

func TestLastLifeToEnemyBulletEndsGame(t *testing.T) {
	var logs bytes.Buffer
	s := NewState(config.DefaultTuning(), Options{
		Rand:   rand.New(rand.NewSource(1)),
		Logger: log.New(&logs),
	})
	s.Update(input.Input{Confirm: true}, epoch, tick)
	s.Formation.FireChance = 0

	s.Player.Lives = 1
	s.EnemyBullets = object.Bullets{s.Player.Rect}
	s.Update(input.Input{}, epoch.Add(tick), tick)

	if s.Player.Lives != 0 {
		t.Errorf("Lives = %d, want 0", s.Player.Lives)
	}
	if s.GameState != GameStateGameOver {
		t.Fatalf("GameState = %v, want game over", s.GameState)
	}
	if !strings.Contains(logs.String(), "game over") {
		t.Errorf("expected game over log, got %q", logs.String())
	}
}

func TestGameOverBackToMenuThenFullReset(t *testing.T) {
	s := newPlaying(t)
	s.Level = 4
	s.Score = 1234
	s.Player.Lives = 0
	s.GameState = GameStateGameOver

	s.Update(input.Input{}, epoch.Add(tick), tick)
	if s.GameState != GameStateGameOver {
		t.Fatal("game over screen should wait for confirm")
	}

	s.Update(input.Input{Confirm: true}, epoch.Add(2*tick), tick)
	if s.GameState != GameStateMenu {
		t.Fatalf("GameState = %v, want menu", s.GameState)
	}

	s.Update(input.Input{Confirm: true}, epoch.Add(3*tick), tick)
	if s.GameState != GameStatePlaying {
		t.Fatalf("GameState = %v, want playing", s.GameState)
	}
	if s.Level != 1 || s.Score != 0 || s.Player.Lives != 3 {
		t.Errorf("full reset left level=%d score=%d lives=%d", s.Level, s.Score, s.Player.Lives)
	}
	if len(s.Formation.Enemies) != 40 {
		t.Errorf("fresh wave has %d enemies, want 40", len(s.Formation.Enemies))
	}
}

func TestFireTwiceWithinCooldown(t *testing.T) {
	s := newPlaying(t)
	fire := input.Input{Fire: true}

	s.Update(fire, epoch.Add(time.Second), tick)
	s.Update(fire, epoch.Add(time.Second+100*time.Millisecond), tick)
	if len(s.PlayerBullets) != 1 {
		t.Fatalf("len(PlayerBullets) = %d, want 1", len(s.PlayerBullets))
	}

	s.Update(fire, epoch.Add(time.Second+250*time.Millisecond), tick)
	if len(s.PlayerBullets) != 2 {
		t.Errorf("len(PlayerBullets) = %d after cooldown, want 2", len(s.PlayerBullets))
	}
}

func TestPlayerBulletsRise(t *testing.T) {
	s := newPlaying(t)
	s.PlayerBullets = object.Bullets{{X: 20, Y: 700, W: 6, H: 16}, {X: 20, Y: -5, W: 6, H: 16}}
	s.Update(input.Input{}, epoch.Add(tick), tick)

	// The second bullet ends at y=-16 with its bottom on the top edge: still visible.
	want := object.Bullets{{X: 20, Y: 689, W: 6, H: 16}, {X: 20, Y: -16, W: 6, H: 16}}
	if len(s.PlayerBullets) != 2 || s.PlayerBullets[0] != want[0] || s.PlayerBullets[1] != want[1] {
		t.Fatalf("PlayerBullets = %v, want %v", s.PlayerBullets, want)
	}

	s.Update(input.Input{}, epoch.Add(2*tick), tick)
	if len(s.PlayerBullets) != 1 {
		t.Errorf("bullet above the screen should be culled: %v", s.PlayerBullets)
	}
}

func TestResolvePlayerHits(t *testing.T) {
	tests := []struct {
		name      string
		offsetY   int // bullet bottom relative to the enemy top
		wantHit   bool
		wantScore int
	}{
		{"touching edge counts", 0, true, 100},
		{"overlap", 5, true, 100},
		{"one unit short", -1, false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newPlaying(t)
			target := s.Formation.Enemies[0].Rect
			s.PlayerBullets = object.Bullets{{X: target.X, Y: target.Y - 16 + tc.offsetY, W: 6, H: 16}}

			s.resolvePlayerHits()

			if alive := s.Formation.Enemies[0].Alive; alive == tc.wantHit {
				t.Errorf("enemy alive = %v, want %v", alive, !tc.wantHit)
			}
			if s.Score != tc.wantScore {
				t.Errorf("Score = %d, want %d", s.Score, tc.wantScore)
			}
			if spent := len(s.PlayerBullets) == 0; spent != tc.wantHit {
				t.Errorf("bullet spent = %v, want %v", spent, tc.wantHit)
			}
		})
	}
}

func TestBulletKillsOnlyFirstEnemy(t *testing.T) {
	s := newPlaying(t)
	s.Level = 3
	first, second := s.Formation.Enemies[0].Rect, s.Formation.Enemies[1].Rect
	s.PlayerBullets = object.Bullets{{X: first.X, Y: first.Y, W: second.Right() - first.X, H: 4}}

	s.resolvePlayerHits()

	if s.Formation.Enemies[0].Alive || !s.Formation.Enemies[1].Alive {
		t.Error("a bullet must kill exactly the first enemy in formation order")
	}
	if s.Score != 140 {
		t.Errorf("Score = %d, want 140 at level 3", s.Score)
	}
}

func TestResolvePlayerHitsRecalcsBounds(t *testing.T) {
	s := newPlaying(t)
	// Kill the whole left column.
	for r := 0; r < 4; r++ {
		e := s.Formation.Enemies[r*10].Rect
		s.PlayerBullets = append(s.PlayerBullets, physics.NewRect(e.X, e.Y, 6, 4))
	}
	before := s.Formation.Bounds
	s.resolvePlayerHits()

	if s.Formation.Bounds.X != before.X+64 {
		t.Errorf("Bounds.X = %d, want %d", s.Formation.Bounds.X, before.X+64)
	}
}

func TestResolveEnemyHits(t *testing.T) {
	s := newPlaying(t)
	p := s.Player.Rect
	far := physics.NewRect(100, 100, 6, 16)
	near := physics.NewRect(p.X-200, p.Y-35, 6, 16) // below the safety line at p.Y-40

	s.EnemyBullets = object.Bullets{far, p, near}
	s.resolveEnemyHits()

	if s.Player.Lives != 2 {
		t.Fatalf("Lives = %d, want 2", s.Player.Lives)
	}
	if len(s.EnemyBullets) != 1 || s.EnemyBullets[0] != far {
		t.Fatalf("EnemyBullets = %v, want only %v", s.EnemyBullets, far)
	}

	// Invulnerable: the colliding bullet is spent but nothing else is dropped.
	s.EnemyBullets = object.Bullets{p, near, p}
	s.resolveEnemyHits()
	if s.Player.Lives != 2 {
		t.Errorf("Lives = %d, hit during invulnerability must be ignored", s.Player.Lives)
	}
	if len(s.EnemyBullets) != 2 || s.EnemyBullets[0] != near || s.EnemyBullets[1] != p {
		t.Errorf("EnemyBullets = %v, want [near, second colliding]", s.EnemyBullets)
	}
}

func TestReachedBottomRescue(t *testing.T) {
	s := newPlaying(t)
	f := s.Formation
	f.Nudge(f.DangerLine() - f.Bounds.Bottom())

	s.Update(input.Input{}, epoch.Add(tick), tick)

	if s.Player.Lives != 2 {
		t.Errorf("Lives = %d, want 2", s.Player.Lives)
	}
	if s.GameState != GameStatePlaying {
		t.Fatalf("GameState = %v, want playing", s.GameState)
	}
	if got, want := f.Bounds.Bottom(), f.DangerLine()-80; got != want {
		t.Errorf("Bounds.Bottom() = %d after rescue, want %d", got, want)
	}
}

func TestReachedBottomOnLastLifeStopsTick(t *testing.T) {
	s := newPlaying(t)
	s.Player.Lives = 1
	f := s.Formation
	f.Nudge(f.DangerLine() - f.Bounds.Bottom())
	stray := physics.NewRect(10, 300, 6, 16)
	s.EnemyBullets = object.Bullets{stray}

	s.Update(input.Input{}, epoch.Add(tick), tick)

	if s.GameState != GameStateGameOver {
		t.Fatalf("GameState = %v, want game over", s.GameState)
	}
	if s.EnemyBullets[0] != stray {
		t.Error("enemy bullets moved after the game ended")
	}
}

func TestQuitStopsSession(t *testing.T) {
	for _, gs := range []GameState{GameStateMenu, GameStatePlaying, GameStateGameOver} {
		s := NewState(config.DefaultTuning(), Options{})
		s.GameState = gs
		s.Update(input.Input{Quit: true}, epoch, tick)
		if s.Running {
			t.Errorf("%v: Running still true after quit", gs)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newPlaying(t)
	s.PlayerBullets = object.Bullets{{X: 1, Y: 2, W: 6, H: 16}}
	snap := s.Snapshot()

	if snap.Lives != 3 || snap.Level != 1 || snap.GameState != GameStatePlaying {
		t.Errorf("snapshot header = %+v", snap)
	}
	if len(snap.Enemies) != 40 || snap.Enemies[0].Rect != s.Formation.Enemies[0].Rect {
		t.Fatal("snapshot enemies do not mirror the formation")
	}

	snap.Enemies[0].Alive = false
	snap.PlayerBullets[0].X = 99
	if !s.Formation.Enemies[0].Alive || s.PlayerBullets[0].X != 1 {
		t.Error("mutating a snapshot changed the session")
	}
}

func TestGameStateString(t *testing.T) {
	tests := map[GameState]string{
		GameStateMenu:     "menu",
		GameStatePlaying:  "playing",
		GameStateGameOver: "game_over",
		GameState(42):     "unknown",
	}
	for gs, want := range tests {
		if got := gs.String(); got != want {
			t.Errorf("GameState(%d).String() = %q, want %q", int(gs), got, want)
		}
	}
}
