package host

import (
	"math"
	"sort"

	"github.com/phanxgames/carousel"
)

// View is a perspective camera over a carousel engine: eye at the engine's
// CameraRig position, looking at the ring centre with +Y up. It projects
// item positions to screen pixels for drawing, drag conversion and hit
// testing.
type View struct {
	// Width and Height are the screen size in pixels.
	Width, Height float64
	// FOV is the vertical field of view in radians.
	FOV float64

	engine *carousel.Engine
	order  []drawEntry
}

// drawEntry is one item's projected footprint for a frame.
type drawEntry struct {
	index  int
	depth  float64
	rect   screenRect
	centre [2]float64
}

// screenRect is an axis-aligned rectangle in screen pixels.
type screenRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle, edges inclusive.
func (r screenRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// NewView returns a view of the given size with a 45° field of view.
func NewView(width, height float64) *View {
	return &View{Width: width, Height: height, FOV: math.Pi / 4}
}

// Attach binds the view to the engine it projects. Call it right after
// carousel.New, before the first Update.
func (v *View) Attach(e *carousel.Engine) {
	v.engine = e
}

// SetSize updates the screen size, e.g. from ebiten's Layout.
func (v *View) SetSize(width, height float64) {
	v.Width, v.Height = width, height
}

// ViewportWidth implements carousel.Projector.
func (v *View) ViewportWidth() float64 { return v.Width }

// focal returns the projection scale in pixels per unit at depth 1.
func (v *View) focal() float64 {
	return (v.Height / 2) / math.Tan(v.FOV/2)
}

// basis returns the camera's right, up and forward unit vectors.
func basis(eye carousel.Vec3) (right, up, forward carousel.Vec3) {
	forward = eye.Scale(-1).Normalize()
	worldUp := carousel.Vec3{Y: 1}
	right = forward.Cross(worldUp).Normalize()
	if right.Len() == 0 {
		right = carousel.Vec3{X: 1}
	}
	up = right.Cross(forward)
	return right, up, forward
}

func (v *View) eye() carousel.Vec3 {
	if v.engine == nil {
		return carousel.Vec3{Z: 1}
	}
	return v.engine.Camera().Position
}

// Project maps a world point to screen pixels. depth is the distance along
// the view direction; ok is false for points at or behind the eye.
func (v *View) Project(p carousel.Vec3) (sx, sy, depth float64, ok bool) {
	eye := v.eye()
	right, up, forward := basis(eye)
	d := p.Sub(eye)
	depth = d.Dot(forward)
	if depth <= 1e-6 {
		return 0, 0, depth, false
	}
	f := v.focal() / depth
	sx = v.Width/2 + d.Dot(right)*f
	sy = v.Height/2 - d.Dot(up)*f
	return sx, sy, depth, true
}

// ProjectX implements carousel.Projector. Points behind the eye project to
// the screen centre so finite differences there stay flat.
func (v *View) ProjectX(p carousel.Vec3) float64 {
	sx, _, _, ok := v.Project(p)
	if !ok {
		return v.Width / 2
	}
	return sx
}

// layout projects every item and sorts far to near. The result is reused
// across frames.
func (v *View) layout() []drawEntry {
	v.order = v.order[:0]
	if v.engine == nil {
		return v.order
	}
	cfg := v.engine.Config()
	ring := v.engine.Ring()
	rot := v.engine.Rotation()
	for _, it := range v.engine.Items() {
		p := ring.WorldPosition(it.Index, rot)
		sx, sy, depth, ok := v.Project(p)
		if !ok {
			continue
		}
		f := v.focal() / depth
		w := cfg.ItemWidth * it.Scale * f
		h := cfg.ItemHeight * it.Scale * f
		v.order = append(v.order, drawEntry{
			index:  it.Index,
			depth:  depth,
			rect:   screenRect{X: sx - w/2, Y: sy - h/2, Width: w, Height: h},
			centre: [2]float64{sx, sy},
		})
	}
	sort.SliceStable(v.order, func(i, j int) bool {
		return v.order[i].depth > v.order[j].depth
	})
	return v.order
}

// HitTest implements carousel.HitTester: the nearest item whose projected
// rectangle contains the point, or carousel.NoItem.
func (v *View) HitTest(x, y float64) int {
	order := v.layout()
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].rect.Contains(x, y) {
			return order[i].index
		}
	}
	return carousel.NoItem
}
