package object

import "github.com/tomz197/asteroid-shooter/internal/config"

// Player is the ship at the bottom of the screen.
type Player struct {
	Body
	BulletsLeft int
	MaxBullets  int
	step        float64
}

// NewPlayer places the ship horizontally centered, resting just above the bottom edge.
func NewPlayer(id uint64, cfg config.Game) *Player {
	size := cfg.Size.Player
	x := cfg.Resolution.Width / 2
	y := cfg.Resolution.Height - size/2 - 2
	return &Player{
		Body:        NewBody(id, KindPlayer, x, y, size, size),
		BulletsLeft: cfg.Amount.PlayerBullets,
		MaxBullets:  cfg.Amount.PlayerBullets,
		step:        cfg.Speed.PlayerStep,
	}
}

// MoveLeft shifts the ship one step left if it stays fully on screen.
func (p *Player) MoveLeft() bool {
	if p.X-p.step-p.Width/2 < 0 {
		return false
	}
	p.X -= p.step
	return true
}

// MoveRight shifts the ship one step right if it stays fully on screen.
func (p *Player) MoveRight(screenWidth float64) bool {
	if p.X+p.step+p.Width/2 > screenWidth {
		return false
	}
	p.X += p.step
	return true
}

// CanFire reports whether any bullets remain.
func (p *Player) CanFire() bool {
	return p.BulletsLeft > 0
}

// Fire spawns a bullet at the nose of the ship and spends one from the budget.
// Returns nil when the budget is exhausted.
func (p *Player) Fire(id uint64, cfg config.Game) *Bullet {
	if !p.CanFire() {
		return nil
	}
	p.BulletsLeft--
	return NewBullet(id, KindPlayerBullet, p.X, p.Y-p.Height/2, cfg)
}
