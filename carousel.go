package carousel

import "math"

// NoItem is the index reported when no ring item is involved: an empty hit
// test, no focus, no open item.
const NoItem = -1

// Vec3 is a 3D vector in world space. The ring lies in the XZ plane and the
// default camera looks along -Z from positive Z.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation between v and o at t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// PointerType identifies the device behind a pointer event.
type PointerType uint8

const (
	PointerMouse PointerType = iota // mouse or trackpad
	PointerTouch                    // finger on a touch screen
	PointerPen                      // stylus
)

// String returns the DOM-style name of the pointer type.
func (p PointerType) String() string {
	switch p {
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	default:
		return "mouse"
	}
}

// ParsePointerType maps "mouse", "touch" and "pen" to a PointerType.
// Unknown names map to PointerMouse.
func ParsePointerType(s string) PointerType {
	switch s {
	case "touch":
		return PointerTouch
	case "pen":
		return PointerPen
	default:
		return PointerMouse
	}
}

// holds reports whether press-and-hold applies to this pointer type.
// Mouse pointers pause through hover instead.
func (p PointerType) holds() bool {
	return p == PointerTouch || p == PointerPen
}

// PointerEvent is a single pointer sample in screen pixels.
type PointerEvent struct {
	X, Y      float64
	PointerID int
	Type      PointerType
}

// HitTester maps a screen position to the ring item drawn there, or NoItem.
// It is supplied by the renderer, which knows the projected geometry.
type HitTester interface {
	HitTest(x, y float64) int
}

// HitTestFunc adapts a plain function to HitTester.
type HitTestFunc func(x, y float64) int

// HitTest calls f(x, y).
func (f HitTestFunc) HitTest(x, y float64) int { return f(x, y) }

// Projector converts world positions to screen X, for measuring how many
// pixels one radian of ring rotation covers near a given item.
type Projector interface {
	ProjectX(p Vec3) float64
	ViewportWidth() float64
}

// PointerCapturer routes a pointer's later events to the carousel surface
// while a gesture is in progress. Failures are ignored: some platforms
// refuse capture for some devices.
type PointerCapturer interface {
	CapturePointer(pointerID int) error
	ReleasePointer(pointerID int) error
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
