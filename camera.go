package carousel

import (
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraConfig parameterises the CameraRig.
type CameraConfig struct {
	// Position is the resting eye position. The camera always looks at the
	// ring centre.
	Position Vec3 `yaml:"position"`
	// FocusDistance is the eye distance while an item is open.
	FocusDistance float64 `yaml:"focus_distance"`
	// MinDistance and MaxDistance clamp wheel zoom.
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	// ZoomStep is the distance change per wheel pixel.
	ZoomStep float64 `yaml:"zoom_step"`
	// AnimateDuration is the length of open/close camera moves.
	AnimateDuration time.Duration `yaml:"animate_duration"`
	// SpringFrequency and SpringDamping shape the zoom spring.
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
	// FPS is the update rate the zoom spring is tuned for.
	FPS int `yaml:"fps"`
}

// cameraMove is a wall-clock camera animation. Progress is always computed
// from the captured start time, never accumulated per frame.
type cameraMove struct {
	from, to Vec3
	start    time.Time
	duration time.Duration
	tween    *gween.Tween
}

// CameraRig is an orbit-style camera around the ring centre. Wheel zoom
// moves a target distance that the eye follows through a spring; opening
// an item runs a cubic ease-out move toward it.
type CameraRig struct {
	// Position is the current eye position.
	Position Vec3
	// Enabled gates user zoom. The engine disables it during drags.
	Enabled bool

	dir        Vec3
	distance   float64
	velocity   float64
	target     float64
	rest       float64
	minDist    float64
	maxDist    float64
	zoomStep   float64
	focusDist  float64
	duration   time.Duration
	spring     harmonica.Spring
	move       *cameraMove
	preOpenDst float64
}

// NewCameraRig returns a rig resting at cfg.Position.
func NewCameraRig(cfg CameraConfig) *CameraRig {
	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	dist := cfg.Position.Len()
	return &CameraRig{
		Position:  cfg.Position,
		Enabled:   true,
		dir:       cfg.Position.Normalize(),
		distance:  dist,
		target:    dist,
		rest:      dist,
		minDist:   cfg.MinDistance,
		maxDist:   cfg.MaxDistance,
		zoomStep:  cfg.ZoomStep,
		focusDist: cfg.FocusDistance,
		duration:  cfg.AnimateDuration,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), cfg.SpringFrequency, cfg.SpringDamping),
	}
}

// Distance returns the current eye distance from the ring centre.
func (c *CameraRig) Distance() float64 { return c.distance }

// TargetDistance returns the distance the zoom spring is heading for.
func (c *CameraRig) TargetDistance() float64 { return c.target }

// Animating reports whether a timed camera move is in progress.
func (c *CameraRig) Animating() bool { return c.move != nil }

// Zoom moves the target distance by deltaY wheel pixels, clamped to the
// configured range. Ignored while disabled or mid-animation.
func (c *CameraRig) Zoom(deltaY float64) {
	if !c.Enabled || c.move != nil || !finite(deltaY) {
		return
	}
	c.target = clamp(c.target+deltaY*c.zoomStep, c.minDist, c.maxDist)
}

// AnimateTo starts a timed move from the current eye position to end,
// eased with a cubic ease-out. A non-positive duration jumps immediately.
func (c *CameraRig) AnimateTo(end Vec3, duration time.Duration, now time.Time) {
	if duration <= 0 {
		c.settleAt(end)
		return
	}
	c.move = &cameraMove{
		from:     c.Position,
		to:       end,
		start:    now,
		duration: duration,
		tween:    gween.New(0, 1, float32(duration.Seconds()), ease.OutCubic),
	}
}

// ZoomIn animates toward the focus distance along the current direction,
// remembering the distance to return to.
func (c *CameraRig) ZoomIn(now time.Time) {
	c.preOpenDst = c.distance
	c.AnimateTo(c.dir.Scale(c.focusDist), c.duration, now)
}

// ZoomOut animates back to the distance held before ZoomIn.
func (c *CameraRig) ZoomOut(now time.Time) {
	d := c.preOpenDst
	if d <= 0 {
		d = c.rest
	}
	c.AnimateTo(c.dir.Scale(d), c.duration, now)
}

// Update advances the active move or the zoom spring.
func (c *CameraRig) Update(now time.Time) {
	if m := c.move; m != nil {
		ratio := clamp(float64(now.Sub(m.start))/float64(m.duration), 0, 1)
		p, _ := m.tween.Set(float32(ratio * m.duration.Seconds()))
		c.Position = m.from.Lerp(m.to, float64(p))
		if ratio >= 1 {
			c.settleAt(m.to)
		}
		return
	}
	c.distance, c.velocity = c.spring.Update(c.distance, c.velocity, c.target)
	c.Position = c.dir.Scale(c.distance)
}

func (c *CameraRig) settleAt(p Vec3) {
	c.move = nil
	c.Position = p
	if d := p.Len(); d > 0 {
		c.dir = p.Normalize()
		c.distance = d
		c.target = d
		c.velocity = 0
	}
}
