package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Game is the complete, immutable tuning of a game session.
// It is passed by value into levels and sessions; nothing mutates it after Load.
//
// All lengths are in logical units. The renderer scales the logical
// resolution to whatever the terminal offers.
type Game struct {
	Resolution Resolution `yaml:"resolution"`
	Size       Sizes      `yaml:"size"`
	Speed      Speeds     `yaml:"speed"`
	Amount     Amounts    `yaml:"amount"`
	Timing     Timing     `yaml:"timing"`
	Padding    Padding    `yaml:"padding"`
	FPS        int        `yaml:"fps"`
}

// Resolution is the logical play field.
type Resolution struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Sizes are the bounding-box edge lengths of each entity kind.
type Sizes struct {
	Player    float64 `yaml:"player"`
	Asteroid  float64 `yaml:"asteroid"`
	Boss      float64 `yaml:"boss"`
	Bullet    float64 `yaml:"bullet"`
	Explosion float64 `yaml:"explosion"`
}

// Speeds are in units per second, except PlayerStep which is applied once per key press.
type Speeds struct {
	PlayerStep       float64 `yaml:"playerStep"`
	Asteroid         float64 `yaml:"asteroid"`
	Boss             float64 `yaml:"boss"`
	Bullet           float64 `yaml:"bullet"`
	AsteroidRotation float64 `yaml:"asteroidRotation"` // radians per second
}

// Amounts are the per-level budgets.
type Amounts struct {
	PlayerBullets int `yaml:"playerBullets"`
	Asteroids     int `yaml:"asteroids"`
	BossHealth    int `yaml:"bossHealth"`
}

// Timing holds every scheduled interval of a level.
type Timing struct {
	LevelDuration     time.Duration `yaml:"levelDuration"`
	BossFireInterval  time.Duration `yaml:"bossFireInterval"`
	BossPauseInterval time.Duration `yaml:"bossPauseInterval"`
	BossPauseDuration time.Duration `yaml:"bossPauseDuration"`
	ExplosionLifetime time.Duration `yaml:"explosionLifetime"`
	OverlayDelay      time.Duration `yaml:"overlayDelay"` // confirm is ignored this long after an overlay appears
}

// Padding reserves room for the HUD above the play field.
type Padding struct {
	ScreenTop float64 `yaml:"screenTop"`
	Text      float64 `yaml:"text"`
}

// Default returns the built-in tuning.
func Default() Game {
	return Game{
		Resolution: Resolution{Width: 120, Height: 80},
		Size: Sizes{
			Player:    8,
			Asteroid:  8,
			Boss:      12,
			Bullet:    1,
			Explosion: 8,
		},
		Speed: Speeds{
			PlayerStep:       3,
			Asteroid:         11,
			Boss:             11,
			Bullet:           40,
			AsteroidRotation: 0.6,
		},
		Amount: Amounts{
			PlayerBullets: 10,
			Asteroids:     10,
			BossHealth:    4,
		},
		Timing: Timing{
			LevelDuration:     60 * time.Second,
			BossFireInterval:  2 * time.Second,
			BossPauseInterval: 3 * time.Second,
			BossPauseDuration: time.Second,
			ExplosionLifetime: 500 * time.Millisecond,
			OverlayDelay:      500 * time.Millisecond,
		},
		Padding: Padding{ScreenTop: 10, Text: 1},
		FPS:     60,
	}
}

// FrameTime is the target duration of one frame.
func (g Game) FrameTime() time.Duration {
	return time.Second / time.Duration(g.FPS)
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid game config")

// Validate reports the first out-of-range value.
func (g Game) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"resolution.width", g.Resolution.Width},
		{"resolution.height", g.Resolution.Height},
		{"size.player", g.Size.Player},
		{"size.asteroid", g.Size.Asteroid},
		{"size.boss", g.Size.Boss},
		{"size.bullet", g.Size.Bullet},
		{"size.explosion", g.Size.Explosion},
		{"speed.playerStep", g.Speed.PlayerStep},
		{"speed.asteroid", g.Speed.Asteroid},
		{"speed.boss", g.Speed.Boss},
		{"speed.bullet", g.Speed.Bullet},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalid, p.name, p.value)
		}
	}

	if g.Speed.AsteroidRotation < 0 {
		return fmt.Errorf("%w: speed.asteroidRotation must be >= 0, got %g", ErrInvalid, g.Speed.AsteroidRotation)
	}
	if g.Amount.PlayerBullets < 1 {
		return fmt.Errorf("%w: amount.playerBullets must be >= 1, got %d", ErrInvalid, g.Amount.PlayerBullets)
	}
	if g.Amount.Asteroids < 1 {
		return fmt.Errorf("%w: amount.asteroids must be >= 1, got %d", ErrInvalid, g.Amount.Asteroids)
	}
	if g.Amount.BossHealth < 1 {
		return fmt.Errorf("%w: amount.bossHealth must be >= 1, got %d", ErrInvalid, g.Amount.BossHealth)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"timing.levelDuration", g.Timing.LevelDuration},
		{"timing.bossFireInterval", g.Timing.BossFireInterval},
		{"timing.bossPauseInterval", g.Timing.BossPauseInterval},
		{"timing.bossPauseDuration", g.Timing.BossPauseDuration},
		{"timing.explosionLifetime", g.Timing.ExplosionLifetime},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %s", ErrInvalid, d.name, d.value)
		}
	}
	// The countdown shows whole seconds.
	if g.Timing.LevelDuration%time.Second != 0 {
		return fmt.Errorf("%w: timing.levelDuration must be whole seconds, got %s", ErrInvalid, g.Timing.LevelDuration)
	}
	if g.Timing.OverlayDelay < 0 {
		return fmt.Errorf("%w: timing.overlayDelay must be >= 0, got %s", ErrInvalid, g.Timing.OverlayDelay)
	}

	if g.Padding.ScreenTop < 0 || g.Padding.Text < 0 {
		return fmt.Errorf("%w: padding must be >= 0", ErrInvalid)
	}
	// The player must fit on screen and asteroids must fit between the edges.
	if g.Size.Player >= g.Resolution.Width || g.Size.Player >= g.Resolution.Height {
		return fmt.Errorf("%w: size.player %g does not fit the resolution", ErrInvalid, g.Size.Player)
	}
	if g.Size.Asteroid >= g.Resolution.Width || g.Size.Boss >= g.Resolution.Width {
		return fmt.Errorf("%w: enemies wider than the resolution", ErrInvalid)
	}
	if g.FPS < 1 || g.FPS > 240 {
		return fmt.Errorf("%w: fps must be within 1..240, got %d", ErrInvalid, g.FPS)
	}
	return nil
}

// Load reads a YAML file on top of Default and validates the result.
// Keys missing from the file keep their default value. An empty path yields Default.
func Load(path string) (Game, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Game{}, fmt.Errorf("failed to read game config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Game{}, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Game{}, err
	}
	return cfg, nil
}
