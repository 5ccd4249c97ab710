// Package object defines the game entities and the collections that own them.
//
// Every entity is a Body tagged with a Kind. Behavior that differs per kind
// lives on the concrete types (Player, Bullet, Asteroid, Boss, Explosion);
// shared fields and hit-testing geometry live on Body.
package object

import (
	"github.com/tomz197/asteroid-shooter/internal/physics"
)

// Kind tags the variant of an entity.
type Kind int

const (
	KindPlayer Kind = iota + 1
	KindPlayerBullet
	KindBossBullet
	KindAsteroid
	KindBoss
	KindExplosion
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPlayerBullet:
		return "player-bullet"
	case KindBossBullet:
		return "boss-bullet"
	case KindAsteroid:
		return "asteroid"
	case KindBoss:
		return "boss"
	case KindExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Entity is implemented by everything that occupies space on the play field.
type Entity interface {
	ID() uint64
	Kind() Kind
	Position() (x, y float64)
	Bounds() physics.Rect
}

// Body holds the fields shared by all entities.
// X and Y are the center of the bounding box.
type Body struct {
	id     uint64
	kind   Kind
	X, Y   float64
	Width  float64
	Height float64
}

// NewBody creates a body centered on (x, y).
func NewBody(id uint64, kind Kind, x, y, width, height float64) Body {
	return Body{id: id, kind: kind, X: x, Y: y, Width: width, Height: height}
}

// ID returns the unique entity id.
func (b *Body) ID() uint64 { return b.id }

// Kind returns the entity variant.
func (b *Body) Kind() Kind { return b.kind }

// Position returns the center of the entity.
func (b *Body) Position() (float64, float64) { return b.X, b.Y }

// Bounds returns the bounding box used for hit testing.
func (b *Body) Bounds() physics.Rect {
	return physics.RectAround(b.X, b.Y, b.Width, b.Height)
}

// Direction is a horizontal heading.
type Direction int

const (
	DirectionLeft  Direction = -1
	DirectionNone  Direction = 0
	DirectionRight Direction = 1
)

// randomDirection picks left or right with equal probability.
func randomDirection(rng Rand) Direction {
	if rng.Float64() < 0.5 {
		return DirectionLeft
	}
	return DirectionRight
}

// Rand is the subset of *math/rand.Rand used to place and steer entities.
// Injected so levels stay reproducible under test.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// IDs hands out entity ids. The zero value starts at 1.
type IDs struct {
	last uint64
}

// Next returns a fresh id.
func (g *IDs) Next() uint64 {
	g.last++
	return g.last
}

// bounceHorizontal moves x by dx and flips dir when the extent touches an edge.
func bounceHorizontal(x *float64, dir *Direction, dx, halfWidth, screenWidth float64) {
	*x += float64(*dir) * dx
	if *x+halfWidth >= screenWidth {
		*dir = DirectionLeft
	} else if *x-halfWidth <= 0 {
		*dir = DirectionRight
	}
}
