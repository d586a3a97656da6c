package object

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/tomz197/invaders/internal/physics"
)

func TestBulletsAdvance(t *testing.T) {
	b := Bullets{{X: 10, Y: 100, W: 6, H: 16}, {X: 20, Y: 50, W: 6, H: 16}}
	b.Advance(-11)
	if b[0].Y != 89 || b[1].Y != 39 {
		t.Errorf("after Advance(-11): %v", b)
	}
}

func TestBulletsCull(t *testing.T) {
	screen := ScreenRect(1280, 720)
	b := Bullets{
		{X: 10, Y: 100, W: 6, H: 16},   // visible
		{X: 10, Y: -16, W: 6, H: 16},   // touching top border
		{X: 10, Y: -17, W: 6, H: 16},   // gone above
		{X: 10, Y: 721, W: 6, H: 16},   // gone below
		{X: 10, Y: 720, W: 6, H: 16},   // touching bottom border
		{X: -7, Y: 100, W: 6, H: 16},   // gone left
		{X: 1281, Y: 100, W: 6, H: 16}, // gone right
	}
	original := append(Bullets(nil), b...)

	got := b.Cull(screen)
	want := Bullets{b[0], b[1], b[4]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cull = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(b, original) {
		t.Error("Cull mutated its receiver")
	}
}

func TestBulletsCullIdempotent(t *testing.T) {
	screen := ScreenRect(1280, 720)
	rng := rand.New(rand.NewSource(42))

	b := make(Bullets, 200)
	for i := range b {
		b[i] = physics.Rect{X: rng.Intn(1600) - 160, Y: rng.Intn(1000) - 140, W: 6, H: 16}
	}

	once := b.Cull(screen)
	twice := once.Cull(screen)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("culling is not idempotent: %d then %d bullets", len(once), len(twice))
	}
}

func TestBulletsWithout(t *testing.T) {
	b := Bullets{{X: 1}, {X: 2}, {X: 3}}
	got := b.Without(1)
	want := Bullets{{X: 1}, {X: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Without(1) = %v, want %v", got, want)
	}
	if b[1].X != 2 {
		t.Error("Without mutated its receiver")
	}
}

func TestNewStarfield(t *testing.T) {
	screen := ScreenRect(1280, 720)
	stars := NewStarfield(150, screen, rand.New(rand.NewSource(3)))
	if len(stars) != 150 {
		t.Fatalf("len(stars) = %d, want 150", len(stars))
	}
	for i, s := range stars {
		if s.Rect.W < 1 || s.Rect.W > 3 || s.Rect.W != s.Rect.H {
			t.Errorf("star %d has size %dx%d", i, s.Rect.W, s.Rect.H)
		}
		if s.Rect.X < 0 || s.Rect.X >= 1280 || s.Rect.Y < 0 || s.Rect.Y >= 720 {
			t.Errorf("star %d at (%d,%d) is off screen", i, s.Rect.X, s.Rect.Y)
		}
		if s.Shade < 0 || s.Shade >= StarShades {
			t.Errorf("star %d shade %d out of range", i, s.Shade)
		}
	}

	if NewStarfield(0, screen, rand.New(rand.NewSource(3))) != nil {
		t.Error("expected nil starfield for zero count")
	}
}
