// Package physics provides the extent geometry behind hit testing.
package physics

import "math"

// Rect is an axis-aligned extent: top-left corner plus size.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectAround builds the extent of size w×h centered on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Center returns the bounding-box center.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Radius is half the smaller bounding-box dimension.
func (r Rect) Radius() float64 {
	return math.Min(r.W, r.H) / 2
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles touch or overlap.
// Touching circles (distance == r1+r2) count as overlapping.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	return Distance(x1, y1, x2, y2) <= r1+r2
}

// Collide treats both extents as circles inscribed in their bounding boxes
// and reports whether they overlap.
func Collide(a, b Rect) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	return CirclesOverlap(ax, ay, a.Radius(), bx, by, b.Radius())
}
