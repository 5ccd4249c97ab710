package level

import (
	"github.com/tomz197/asteroid-shooter/internal/object"
	"github.com/tomz197/asteroid-shooter/internal/physics"
)

// evaluateCollisions runs one pass of hit testing for the current variant.
//
// Off-screen removal is applied to a bullet before it is tested against
// anything, and a bullet takes part in at most one removal per pass.
// Every removal re-checks the win and lose conditions; the pass stops as
// soon as the level ends.
func (l *Level) evaluateCollisions() {
	switch l.variant {
	case VariantAsteroids:
		l.evaluateAsteroidHits()
	case VariantBoss:
		l.evaluateBossHits()
	}
}

func (l *Level) evaluateAsteroidHits() {
	height := l.cfg.Resolution.Height

	for _, b := range l.playerBullets.All() {
		if b.Offscreen(height) {
			l.removeBullet(b, l.playerBullets)
			if l.checkStatus() {
				return
			}
			continue
		}

		for _, a := range l.asteroids.All() {
			if !physics.Collide(b.Bounds(), a.Bounds()) {
				continue
			}
			l.removeBullet(b, l.playerBullets)
			l.asteroids.Remove(a.ID())
			l.explode(a.X, a.Y)
			l.logger.Debug("asteroid destroyed", "asteroid", a.ID(), "remaining", l.asteroids.Len())
			if l.checkStatus() {
				return
			}
			break
		}
	}
}

func (l *Level) evaluateBossHits() {
	height := l.cfg.Resolution.Height

	for _, b := range l.playerBullets.All() {
		if b.Offscreen(height) {
			l.removeBullet(b, l.playerBullets)
			if l.checkStatus() {
				return
			}
			continue
		}

		if physics.Collide(b.Bounds(), l.boss.Bounds()) {
			l.removeBullet(b, l.playerBullets)
			l.boss.Hit()
			l.explode(l.boss.X, l.boss.Y)
			l.logger.Debug("boss hit", "health", l.boss.Health)
			if l.checkStatus() {
				return
			}
			continue
		}

		for _, bb := range l.bossBullets.All() {
			if !physics.Collide(b.Bounds(), bb.Bounds()) {
				continue
			}
			l.removeBullet(b, l.playerBullets)
			l.removeBullet(bb, l.bossBullets)
			l.explode(bb.X, bb.Y)
			l.logger.Debug("bullets collided", "bullet", b.ID(), "boss_bullet", bb.ID())
			if l.checkStatus() {
				return
			}
			break
		}
	}

	for _, bb := range l.bossBullets.All() {
		if bb.Offscreen(height) {
			l.removeBullet(bb, l.bossBullets)
			if l.checkStatus() {
				return
			}
			continue
		}

		if physics.Collide(bb.Bounds(), l.player.Bounds()) {
			l.removeBullet(bb, l.bossBullets)
			l.explode(l.player.X, l.player.Y)
			l.finish(PhaseDefeat, CausePlayerHit)
			return
		}
	}
}

// removeBullet drops a bullet from its owner's store and from the on-screen store.
func (l *Level) removeBullet(b *object.Bullet, owner *object.Store[*object.Bullet]) {
	owner.Remove(b.ID())
	l.onScreen.Remove(b.ID())
}
