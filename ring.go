package carousel

import "math"

// Ring is the static layout of N items evenly spaced on a circle in the XZ
// plane. Item 0 sits at angle 0, which is (0, 0, radius) before rotation.
type Ring struct {
	n      int
	radius float64
	step   float64
}

// NewRing returns the layout for n items on a circle of the given radius.
// gap adds extra angular spacing spread over the whole ring; 0 gives an
// exact 2π/n spacing.
func NewRing(n int, radius, gap float64) Ring {
	r := Ring{n: n, radius: radius}
	if n > 0 {
		r.step = (2*math.Pi + gap) / float64(n)
	}
	return r
}

// Len returns the number of items on the ring.
func (r Ring) Len() int { return r.n }

// Radius returns the ring radius.
func (r Ring) Radius() float64 { return r.radius }

// AngleStep returns the angle between consecutive items.
func (r Ring) AngleStep() float64 { return r.step }

// BaseAngle returns the fixed angle of item i before any rotation.
func (r Ring) BaseAngle(i int) float64 { return float64(i) * r.step }

// AngleOf returns the angle of item i with the ring rotated by rotation.
func (r Ring) AngleOf(i int, rotation float64) float64 {
	return r.BaseAngle(i) + rotation
}

// Position returns the unrotated (x, z) of item i.
func (r Ring) Position(i int) (x, z float64) {
	return PositionAt(r.BaseAngle(i), r.radius)
}

// WorldPosition returns the world position of item i at the given rotation.
func (r Ring) WorldPosition(i int, rotation float64) Vec3 {
	x, z := PositionAt(r.AngleOf(i, rotation), r.radius)
	return Vec3{X: x, Z: z}
}

// Distance returns the ring distance between indices a and b: the shortest
// hop count around the circle.
func (r Ring) Distance(a, b int) int {
	if r.n <= 0 {
		return 0
	}
	d := (a - b) % r.n
	if d < 0 {
		d = -d
	}
	if r.n-d < d {
		return r.n - d
	}
	return d
}

// Contains reports whether i is a valid item index.
func (r Ring) Contains(i int) bool { return i >= 0 && i < r.n }

// PositionAt converts an angle on a circle of the given radius to (x, z),
// with x = sin(angle)·radius and z = cos(angle)·radius.
func PositionAt(angle, radius float64) (x, z float64) {
	s, c := math.Sincos(angle)
	return s * radius, c * radius
}
