package object

import (
	"math"
	"time"

	"github.com/tomz197/asteroid-shooter/internal/config"
)

// Asteroid drifts sideways across the upper part of the screen.
type Asteroid struct {
	Body
	Direction     Direction
	Speed         float64   // Units per second
	Angle         float64   // Current rotation angle
	RotationSpeed float64   // Radians per second
	Vertices      []float64 // Vertex distances from center (irregular outline)
}

// NewAsteroid places an asteroid at a random x fully on screen and a random y
// within the top quarter below the HUD.
func NewAsteroid(id uint64, cfg config.Game, rng Rand) *Asteroid {
	size := cfg.Size.Asteroid
	w := cfg.Resolution.Width
	h := cfg.Resolution.Height

	x := size/2 + rng.Float64()*(w-size)
	y := cfg.Padding.Text + cfg.Padding.ScreenTop + size/2 + rng.Float64()*h/4

	// Irregular polygon, radius varies by ±30%
	numVerts := 8 + rng.Intn(5)
	radius := size / 2
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = radius * (0.7 + rng.Float64()*0.6)
	}

	return &Asteroid{
		Body:          NewBody(id, KindAsteroid, x, y, size, size),
		Direction:     randomDirection(rng),
		Speed:         cfg.Speed.Asteroid,
		Angle:         rng.Float64() * 2 * math.Pi,
		RotationSpeed: cfg.Speed.AsteroidRotation,
		Vertices:      vertices,
	}
}

// Update drifts and rotates the asteroid, reversing at either screen edge.
func (a *Asteroid) Update(dt time.Duration, screenWidth float64) {
	sec := dt.Seconds()
	bounceHorizontal(&a.X, &a.Direction, a.Speed*sec, a.Width/2, screenWidth)
	a.Angle = math.Mod(a.Angle+a.RotationSpeed*sec, 2*math.Pi)
}
