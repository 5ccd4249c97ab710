package object

import (
	"time"

	"github.com/tomz197/asteroid-shooter/internal/config"
)

// Boss is the single enemy of a boss level.
type Boss struct {
	Body
	Health    int
	MaxHealth int
	Direction Direction
	Speed     float64
	Paused    bool
}

// NewBoss centers the boss horizontally just below the HUD.
func NewBoss(id uint64, cfg config.Game, rng Rand) *Boss {
	size := cfg.Size.Boss
	x := cfg.Resolution.Width / 2
	y := cfg.Padding.Text + cfg.Padding.ScreenTop + size/2
	return &Boss{
		Body:      NewBody(id, KindBoss, x, y, size, size),
		Health:    cfg.Amount.BossHealth,
		MaxHealth: cfg.Amount.BossHealth,
		Direction: randomDirection(rng),
		Speed:     cfg.Speed.Boss,
	}
}

// Update drifts the boss sideways unless it is paused.
func (b *Boss) Update(dt time.Duration, screenWidth float64) {
	if b.Paused {
		return
	}
	bounceHorizontal(&b.X, &b.Direction, b.Speed*dt.Seconds(), b.Width/2, screenWidth)
}

// Pause stops horizontal movement.
func (b *Boss) Pause() {
	b.Paused = true
}

// Resume restarts movement in a random direction.
func (b *Boss) Resume(rng Rand) {
	b.Paused = false
	b.Direction = randomDirection(rng)
}

// Hit takes one point of health. Health never drops below zero.
// Returns true if the boss is defeated.
func (b *Boss) Hit() bool {
	if b.Health > 0 {
		b.Health--
	}
	return b.Health == 0
}

// Defeated reports whether health has reached zero.
func (b *Boss) Defeated() bool {
	return b.Health == 0
}

// Fire spawns a bullet at the bottom edge of the boss.
func (b *Boss) Fire(id uint64, cfg config.Game) *Bullet {
	return NewBullet(id, KindBossBullet, b.X, b.Y+b.Height/2, cfg)
}
