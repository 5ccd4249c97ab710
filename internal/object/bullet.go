package object

import (
	"time"

	"github.com/tomz197/asteroid-shooter/internal/config"
)

// Bullet travels vertically: player bullets upward, boss bullets downward.
type Bullet struct {
	Body
	VY float64 // Units per second, negative is up
}

// NewBullet creates a bullet of the given kind at (x, y).
// Any kind other than KindBossBullet travels upward.
func NewBullet(id uint64, kind Kind, x, y float64, cfg config.Game) *Bullet {
	vy := -cfg.Speed.Bullet
	if kind == KindBossBullet {
		vy = cfg.Speed.Bullet
	}
	size := cfg.Size.Bullet
	return &Bullet{
		Body: NewBody(id, kind, x, y, size, size),
		VY:   vy,
	}
}

// Update moves the bullet.
func (b *Bullet) Update(dt time.Duration) {
	b.Y += b.VY * dt.Seconds()
}

// Offscreen reports whether the bullet has left the visible vertical bounds.
func (b *Bullet) Offscreen(screenHeight float64) bool {
	return b.Y <= 0 || b.Y >= screenHeight
}
