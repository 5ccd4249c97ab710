package object

import (
	"math"
	"sync"
	"time"

	"github.com/tomz197/asteroid-shooter/internal/config"
)

// explosionPool reuses Explosion values; a level spawns one per hit.
var explosionPool = sync.Pool{
	New: func() any {
		return &Explosion{}
	},
}

// Spark is one fragment of an explosion, drawn as a point moving outward.
type Spark struct {
	Angle float64 // Direction from the center
	Reach float64 // Fraction of the explosion radius reached at end of life
}

// Explosion is a transient visual at an impact point.
// It does not collide with anything; the level removes it once its lifetime elapses.
type Explosion struct {
	Body
	Age      time.Duration
	Lifetime time.Duration
	Sparks   []Spark
}

// NewExplosion takes an explosion from the pool and centers it on (x, y).
func NewExplosion(id uint64, x, y float64, cfg config.Game, rng Rand) *Explosion {
	e := explosionPool.Get().(*Explosion)
	size := cfg.Size.Explosion
	e.Body = NewBody(id, KindExplosion, x, y, size, size)
	e.Age = 0
	e.Lifetime = cfg.Timing.ExplosionLifetime

	count := 8 + rng.Intn(5)
	e.Sparks = e.Sparks[:0]
	for i := 0; i < count; i++ {
		e.Sparks = append(e.Sparks, Spark{
			Angle: rng.Float64() * 2 * math.Pi,
			Reach: 0.5 + rng.Float64()*0.5,
		})
	}
	return e
}

// Update ages the explosion.
func (e *Explosion) Update(dt time.Duration) {
	e.Age += dt
}

// Progress returns how far through its lifetime the explosion is, in [0, 1].
func (e *Explosion) Progress() float64 {
	if e.Lifetime <= 0 {
		return 1
	}
	return math.Min(1, float64(e.Age)/float64(e.Lifetime))
}

// Release returns the explosion to the pool. It must not be used afterwards.
func (e *Explosion) Release() {
	explosionPool.Put(e)
}
