package physics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectGeometry(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 8, H: 4}
	cx, cy := r.Center()
	assert.InDelta(t, 14.0, cx, 1e-9)
	assert.InDelta(t, 22.0, cy, 1e-9)
	assert.InDelta(t, 2.0, r.Radius(), 1e-9)

	around := RectAround(50, 50, 6, 10)
	assert.Equal(t, Rect{X: 47, Y: 45, W: 6, H: 10}, around)
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   float64
		x2, y2   float64
		expected float64
	}{
		{"same point", 0, 0, 0, 0, 0},
		{"horizontal", 0, 0, 3, 0, 3},
		{"vertical", 0, 0, 0, 4, 4},
		{"diagonal 3-4-5", 0, 0, 3, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.x1, tt.y1, tt.x2, tt.y2), 0.001)
			assert.InDelta(t, tt.expected*tt.expected, DistanceSquared(tt.x1, tt.y1, tt.x2, tt.y2), 0.001)
		})
	}
}

func TestCollide(t *testing.T) {
	// a has radius 4 centered at (10, 10).
	a := RectAround(10, 10, 8, 8)

	tests := []struct {
		name     string
		b        Rect
		expected bool
	}{
		{"same center", RectAround(10, 10, 2, 2), true},
		{"overlapping", RectAround(15, 10, 4, 4), true},
		{"exactly touching", RectAround(16, 10, 4, 4), true},
		{"just apart", RectAround(16.01, 10, 4, 4), false},
		{"touching on 3-4-5 diagonal", RectAround(13, 14, 2, 2), true},
		{"far away", RectAround(100, 100, 4, 4), false},
		{"radius uses smaller side", RectAround(10, 17, 20, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Collide(a, tt.b))
		})
	}
}

func TestCollideIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := Rect{X: rng.Float64() * 100, Y: rng.Float64() * 100, W: rng.Float64() * 20, H: rng.Float64() * 20}
		b := Rect{X: rng.Float64() * 100, Y: rng.Float64() * 100, W: rng.Float64() * 20, H: rng.Float64() * 20}
		assert.Equal(t, Collide(a, b), Collide(b, a), "a=%+v b=%+v", a, b)
	}
}

func TestCollideNeverBeyondRadii(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		a := Rect{X: rng.Float64() * 100, Y: rng.Float64() * 100, W: 1 + rng.Float64()*20, H: 1 + rng.Float64()*20}
		b := Rect{X: rng.Float64() * 100, Y: rng.Float64() * 100, W: 1 + rng.Float64()*20, H: 1 + rng.Float64()*20}
		ax, ay := a.Center()
		bx, by := b.Center()
		if Distance(ax, ay, bx, by) > a.Radius()+b.Radius() {
			assert.False(t, Collide(a, b))
		}
	}
}
