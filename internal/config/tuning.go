package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Tuning holds every gameplay constant. The zero value is not usable;
// start from DefaultTuning.
type Tuning struct {
	Screen    Screen    `toml:"screen"`
	Player    Player    `toml:"player"`
	Bullet    Bullet    `toml:"bullet"`
	Formation Formation `toml:"formation"`
	Session   Session   `toml:"session"`
}

// Screen describes the logical playfield.
type Screen struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	SideMargin int `toml:"side_margin"` // Formation bounces off this inset
	TopBand    int `toml:"top_band"`    // HUD band height
	FPS        int `toml:"fps"`
}

// FrameTime returns the target duration of one tick.
func (s Screen) FrameTime() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// Player describes the player ship.
type Player struct {
	Width           int           `toml:"width"`
	Height          int           `toml:"height"`
	Speed           int           `toml:"speed"`         // Units per tick
	Margin          int           `toml:"margin"`        // Clamp inset on both sides
	BottomOffset    int           `toml:"bottom_offset"` // Ship top sits this far above the bottom
	StartLives      int           `toml:"start_lives"`
	Cooldown        time.Duration `toml:"cooldown"`
	Invulnerability time.Duration `toml:"invulnerability"`
	BlinkPeriod     time.Duration `toml:"blink_period"`
}

// Bullet describes projectile size and the player's bullet speed.
type Bullet struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Speed  int `toml:"speed"`
}

// Formation describes the enemy grid and its per-level scaling.
type Formation struct {
	EnemyWidth   int `toml:"enemy_width"`
	EnemyHeight  int `toml:"enemy_height"`
	HGap         int `toml:"h_gap"`
	VGap         int `toml:"v_gap"`
	StartOffset  int `toml:"start_offset"` // First row sits this far below the HUD band
	BaseRows     int `toml:"base_rows"`
	BaseCols     int `toml:"base_cols"`
	MaxExtraRows int `toml:"max_extra_rows"`
	MaxExtraCols int `toml:"max_extra_cols"`

	BaseSpeed        float64 `toml:"base_speed"`
	SpeedPerLevel    float64 `toml:"speed_per_level"`
	BaseStepDown     int     `toml:"base_step_down"`
	StepDownPerLevel int     `toml:"step_down_per_level"`

	BaseFireChance     float64 `toml:"base_fire_chance"`
	FireChancePerLevel float64 `toml:"fire_chance_per_level"`
	MaxFireChance      float64 `toml:"max_fire_chance"`

	BaseBulletSpeed     float64 `toml:"base_bullet_speed"`
	BulletSpeedPerLevel float64 `toml:"bullet_speed_per_level"`

	SpeedBlend   float64 `toml:"speed_blend"`   // Weight of the target speed per tick
	SpeedupSlope float64 `toml:"speedup_slope"` // Factor gained per destroyed fraction
	MaxSpeedup   float64 `toml:"max_speedup"`
	DangerOffset int     `toml:"danger_offset"` // Danger line distance from the bottom
}

// Pitch returns the horizontal cell pitch of the enemy grid.
func (f Formation) Pitch() int {
	return f.EnemyWidth + f.HGap
}

// Session describes scoring and hit-recovery constants.
type Session struct {
	PointsBase     int `toml:"points_base"`
	PointsPerLevel int `toml:"points_per_level"`
	RescueOffset   int `toml:"rescue_offset"` // Formation is pushed up by this after reaching the bottom
	SafetyMargin   int `toml:"safety_margin"` // Enemy bullets closer than this to the player are dropped on damage
	Stars          int `toml:"stars"`
}

// DefaultTuning returns the stock tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		Screen: Screen{
			Width:      1280,
			Height:     720,
			SideMargin: 60,
			TopBand:    80,
			FPS:        60,
		},
		Player: Player{
			Width:           70,
			Height:          18,
			Speed:           7,
			Margin:          30,
			BottomOffset:    60,
			StartLives:      3,
			Cooldown:        250 * time.Millisecond,
			Invulnerability: 1400 * time.Millisecond,
			BlinkPeriod:     120 * time.Millisecond,
		},
		Bullet: Bullet{
			Width:  6,
			Height: 16,
			Speed:  11,
		},
		Formation: Formation{
			EnemyWidth:   46,
			EnemyHeight:  22,
			HGap:         18,
			VGap:         16,
			StartOffset:  40,
			BaseRows:     4,
			BaseCols:     10,
			MaxExtraRows: 3,
			MaxExtraCols: 4,

			BaseSpeed:        2.0,
			SpeedPerLevel:    0.55,
			BaseStepDown:     18,
			StepDownPerLevel: 2,

			BaseFireChance:     0.0018,
			FireChancePerLevel: 0.0006,
			MaxFireChance:      0.012,

			BaseBulletSpeed:     6,
			BulletSpeedPerLevel: 0.35,

			SpeedBlend:   0.02,
			SpeedupSlope: 0.8,
			MaxSpeedup:   2.0,
			DangerOffset: 60,
		},
		Session: Session{
			PointsBase:     100,
			PointsPerLevel: 20,
			RescueOffset:   80,
			SafetyMargin:   40,
			Stars:          150,
		},
	}
}

// LoadTuning reads a TOML file and overlays it on DefaultTuning.
// Keys missing from the file keep their defaults; unknown keys are an error.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, fmt.Errorf("decode tuning %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// EncodeTuning writes t as a TOML document that LoadTuning accepts.
func EncodeTuning(w io.Writer, t Tuning) error {
	if err := toml.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("encode tuning: %w", err)
	}
	return nil
}

// Validate reports every value that would break the simulation.
func (t Tuning) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, v))
		}
	}

	positive("screen.width", t.Screen.Width)
	positive("screen.height", t.Screen.Height)
	positive("screen.fps", t.Screen.FPS)
	positive("player.width", t.Player.Width)
	positive("player.height", t.Player.Height)
	positive("player.start_lives", t.Player.StartLives)
	positive("bullet.width", t.Bullet.Width)
	positive("bullet.height", t.Bullet.Height)
	positive("bullet.speed", t.Bullet.Speed)
	positive("formation.enemy_width", t.Formation.EnemyWidth)
	positive("formation.enemy_height", t.Formation.EnemyHeight)
	positive("formation.base_rows", t.Formation.BaseRows)
	positive("formation.base_cols", t.Formation.BaseCols)

	nonNegative("player.speed", t.Player.Speed)
	nonNegative("player.bottom_offset", t.Player.BottomOffset)
	nonNegative("formation.max_extra_rows", t.Formation.MaxExtraRows)
	nonNegative("formation.max_extra_cols", t.Formation.MaxExtraCols)
	nonNegative("formation.base_step_down", t.Formation.BaseStepDown)
	nonNegative("formation.step_down_per_level", t.Formation.StepDownPerLevel)
	nonNegative("formation.danger_offset", t.Formation.DangerOffset)
	nonNegative("session.points_base", t.Session.PointsBase)
	nonNegative("session.points_per_level", t.Session.PointsPerLevel)
	nonNegative("session.rescue_offset", t.Session.RescueOffset)
	nonNegative("session.safety_margin", t.Session.SafetyMargin)
	nonNegative("session.stars", t.Session.Stars)

	if t.Screen.SideMargin < 0 || 2*t.Screen.SideMargin >= t.Screen.Width {
		errs = append(errs, fmt.Errorf("screen.side_margin %d does not fit width %d", t.Screen.SideMargin, t.Screen.Width))
	}
	if t.Player.Margin < 0 || 2*t.Player.Margin+t.Player.Width > t.Screen.Width {
		errs = append(errs, fmt.Errorf("player.margin %d leaves no room for a %d wide ship on width %d",
			t.Player.Margin, t.Player.Width, t.Screen.Width))
	}
	if t.Formation.HGap < 0 || t.Formation.VGap < 0 {
		errs = append(errs, errors.New("formation gaps must not be negative"))
	}
	if t.Formation.SpeedBlend <= 0 || t.Formation.SpeedBlend > 1 {
		errs = append(errs, fmt.Errorf("formation.speed_blend must be in (0, 1], got %g", t.Formation.SpeedBlend))
	}
	if t.Formation.MaxSpeedup < 1 {
		errs = append(errs, fmt.Errorf("formation.max_speedup must be at least 1, got %g", t.Formation.MaxSpeedup))
	}
	if t.Formation.MaxFireChance < 0 || t.Formation.MaxFireChance > 1 {
		errs = append(errs, fmt.Errorf("formation.max_fire_chance must be a probability, got %g", t.Formation.MaxFireChance))
	}
	if t.Player.Cooldown < 0 || t.Player.Invulnerability < 0 {
		errs = append(errs, errors.New("player durations must not be negative"))
	}
	if t.Player.BlinkPeriod <= 0 {
		errs = append(errs, errors.New("player.blink_period must be positive"))
	}

	return errors.Join(errs...)
}
