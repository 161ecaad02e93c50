package carousel

import (
	"fmt"
	"log"
	"math"
	"time"
)

// Engine is one carousel instance: ring layout, spin, gesture tracking,
// focus field, easing and front detection, advanced by Update once per
// frame. Engines share nothing, so several can run side by side.
//
// Engine is not safe for concurrent use; pointer methods and Update must
// be called from the same goroutine.
type Engine struct {
	cfg    Config
	ring   Ring
	items  []Item
	spin   *Spin
	field  FocusField
	emph   []Emphasis
	camera *CameraRig

	clock   Clock
	timers  scheduler
	hit     HitTester
	proj    Projector
	capture PointerCapturer

	handlers handlerRegistry
	sink     EventSink

	gesture gestureState
	hovered int
	focused int
	opened  int
	ppr     float64

	// coasting suspends the hover freeze from the end of a mouse drag
	// until the next pointer move.
	coasting bool

	front frontWatcher
	easer itemEaser

	lastUpdate time.Time
	started    bool

	injectQueue []syntheticEvent
	script      *ScriptRunner

	debug bool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithClock sets the time source. The default is SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithHitTester sets the renderer's picking function. Without one, no
// pointer ever lands on an item.
func WithHitTester(h HitTester) Option {
	return func(e *Engine) { e.hit = h }
}

// WithProjector lets drag conversion follow the on-screen geometry.
// Without one, Config.PixelsPerRadian is used everywhere.
func WithProjector(p Projector) Option {
	return func(e *Engine) { e.proj = p }
}

// WithPointerCapturer sets the best-effort pointer capture hook.
func WithPointerCapturer(pc PointerCapturer) Option {
	return func(e *Engine) { e.capture = pc }
}

// WithEventSink sets an event forwarder at construction.
func WithEventSink(s EventSink) Option {
	return func(e *Engine) { e.sink = s }
}

// New creates an engine for count items.
func New(count int, cfg Config, opts ...Option) (*Engine, error) {
	if count < 1 {
		return nil, fmt.Errorf("carousel: need at least one item, got %d", count)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("carousel: %w", err)
	}

	ring := NewRing(count, cfg.Radius, cfg.GapAngle)
	e := &Engine{
		cfg:     cfg,
		ring:    ring,
		items:   newItems(ring),
		spin:    NewSpin(cfg.Damping, cfg.FrozenDecay, cfg.MaxSpinVelocity, cfg.PixelsPerRadian),
		field:   NewFocusField(ring, cfg.FocusScale, cfg.AdjacentFactor, cfg.InfluenceNeighbors, cfg.GrayLift),
		camera:  NewCameraRig(cfg.Camera),
		clock:   SystemClock(),
		hovered: NoItem,
		focused: NoItem,
		opened:  NoItem,
		ppr:     cfg.PixelsPerRadian,
		front:   newFrontWatcher(cfg.FrontPollInterval, cfg.AlignThreshold),
	}
	e.gesture.reset()
	for _, opt := range opts {
		opt(e)
	}
	if e.proj != nil {
		e.spin.SetViewportWidth(e.proj.ViewportWidth())
	}
	e.applyField(NoItem)
	return e, nil
}

// SetDebugMode enables logging of gesture and focus transitions.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

func (e *Engine) debugf(format string, args ...any) {
	if e.debug {
		log.Printf("carousel: "+format, args...)
	}
}

// --- Frame loop ---

// Update runs one frame: due timers, queued synthetic input, spin
// integration, camera, easing, and front detection. The frame delta comes
// from the clock and is capped at Config.MaxFrameDelta.
func (e *Engine) Update() {
	now := e.clock.Now()
	dt := 0.0
	if e.started {
		dt = now.Sub(e.lastUpdate).Seconds()
	}
	e.started = true
	e.lastUpdate = now
	dt = clamp(dt, 0, e.cfg.MaxFrameDelta.Seconds())
	if !finite(dt) {
		dt = 0
	}

	if e.script != nil {
		e.script.step(e)
	}
	e.processInjected()
	e.timers.run(now)

	e.spin.Tick(dt, e.cfg.BaseSpin)
	e.camera.Update(now)
	e.easer.step(e.items, e.cfg.ScaleLerp, e.cfg.ColorLerp, dt)

	rot := e.spin.Rotation
	if changed, prev := e.front.poll(now, e.ring, rot); changed {
		e.emit(Event{Type: EventFrontChange, Index: e.front.index, Prev: prev, Phase: e.front.phase})
	}
	if idx, became := e.front.align(e.ring, rot); became {
		e.emit(Event{Type: EventAligned, Index: idx, Prev: NoItem})
	}
}

// --- Read-only state for the renderer ---

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Ring returns the static layout.
func (e *Engine) Ring() Ring { return e.ring }

// Len returns the number of items.
func (e *Engine) Len() int { return len(e.items) }

// Items returns every item. The returned slice MUST NOT be mutated.
func (e *Engine) Items() []Item { return e.items }

// Item returns a copy of item i.
func (e *Engine) Item(i int) Item { return e.items[i] }

// Rotation returns the ring rotation in radians.
func (e *Engine) Rotation() float64 { return e.spin.Rotation }

// Velocity returns the angular impulse velocity in rad/s.
func (e *Engine) Velocity() float64 { return e.spin.Velocity }

// Frozen reports whether the ring is paused.
func (e *Engine) Frozen() bool { return e.spin.Frozen }

// Spin exposes the spin controller.
func (e *Engine) Spin() *Spin { return e.spin }

// Camera exposes the camera rig.
func (e *Engine) Camera() *CameraRig { return e.camera }

// Focus returns the emphasised item, or NoItem.
func (e *Engine) Focus() int { return e.focused }

// Hovered returns the item under the pointer, or NoItem.
func (e *Engine) Hovered() int { return e.hovered }

// Opened returns the open item, or NoItem.
func (e *Engine) Opened() int { return e.opened }

// FrontIndex returns the front-facing item at the current rotation.
func (e *Engine) FrontIndex() int { return FrontIndex(e.ring, e.spin.Rotation) }

// CaptionIndex returns the front item as of the last poll, which is what
// captions should show.
func (e *Engine) CaptionIndex() int { return e.front.index }

// Phase returns the caption phase, 1..6. It starts at 1 and advances
// before each front change is reported, so the first change shows 2.
func (e *Engine) Phase() int { return e.front.phase }

// ControlsEnabled reports whether external camera controls may act. They
// are disabled while a drag is spinning the ring.
func (e *Engine) ControlsEnabled() bool { return e.gesture.phase != GestureDragging }

// PixelsPerRadian returns the drag conversion in use.
func (e *Engine) PixelsPerRadian() float64 { return e.ppr }

// --- Actions ---

// Kick replaces the spin velocity with v, clamped. Used to restart motion
// after an intro or overlay.
func (e *Engine) Kick(v float64) {
	e.spin.SetVelocity(v)
}

// OpenItem opens item i: the ring stops and pauses and the camera moves
// in. It returns false if i is invalid or another item is already open.
func (e *Engine) OpenItem(i int) bool {
	if !e.ring.Contains(i) || e.opened != NoItem {
		return false
	}
	e.opened = i
	e.spin.Stop()
	e.syncFreeze()
	e.camera.ZoomIn(e.clock.Now())
	e.emit(Event{Type: EventOpen, Index: i, Prev: NoItem})
	return true
}

// CloseItem closes the open item, if any, and resumes the ring.
func (e *Engine) CloseItem() bool {
	if e.opened == NoItem {
		return false
	}
	i := e.opened
	e.opened = NoItem
	e.syncFreeze()
	e.camera.ZoomOut(e.clock.Now())
	e.emit(Event{Type: EventClose, Index: i, Prev: NoItem})
	return true
}

// --- Focus and freeze ---

// syncFreeze derives the freeze from everything that pauses the ring: an
// open item, an active hold, or hovering outside a drag.
func (e *Engine) syncFreeze() {
	g := &e.gesture
	frozen := e.opened != NoItem ||
		g.phase == GestureHolding ||
		(e.hovered != NoItem && g.phase != GestureDragging && !e.coasting)
	e.spin.SetFrozen(frozen)
}

// focusCenter picks the focus by priority: drag, then hold, then hover.
func (e *Engine) focusCenter() int {
	g := &e.gesture
	switch {
	case g.phase == GestureDragging && g.grabbed != NoItem:
		return g.grabbed
	case g.phase == GestureHolding && g.holdIndex != NoItem:
		return g.holdIndex
	default:
		return e.hovered
	}
}

// refreshFocus recomputes the emphasis field when the focus changes.
func (e *Engine) refreshFocus() {
	center := e.focusCenter()
	if !e.ring.Contains(center) {
		center = NoItem
	}
	if center == e.focused {
		return
	}
	prev := e.focused
	e.applyField(center)
	e.debugf("focus %d -> %d", prev, center)
	e.emit(Event{Type: EventFocusChange, Index: center, Prev: prev})
}

func (e *Engine) applyField(center int) {
	e.focused = center
	e.emph = e.field.Compute(center, e.emph)
	for i := range e.items {
		e.items[i].setTargets(e.emph[i])
	}
}

func (e *Engine) setHovered(i int) {
	if !e.ring.Contains(i) {
		i = NoItem
	}
	e.hovered = i
	e.syncFreeze()
	e.refreshFocus()
}

// --- Geometry ---

// pixelsPerRadianAt measures the on-screen horizontal scale of ring
// rotation around item i. Degenerate results fall back to the estimate at
// the ring origin, then to the spin's full-turn-across-the-screen value.
func (e *Engine) pixelsPerRadianAt(i int) float64 {
	if e.proj == nil {
		return e.cfg.PixelsPerRadian
	}
	e.spin.SetViewportWidth(e.proj.ViewportWidth())
	rot := e.spin.Rotation
	ppr := e.projectedPPR(e.ring.AngleOf(i, rot))
	if degeneratePPR(ppr) {
		ppr = e.projectedPPR(rot)
	}
	if degeneratePPR(ppr) {
		ppr = e.spin.FallbackPixelsPerRadian()
	}
	return ppr
}

func (e *Engine) projectedPPR(angle float64) float64 {
	const eps = 0.0005
	r := e.ring.Radius()
	x0, z0 := PositionAt(angle-eps, r)
	x1, z1 := PositionAt(angle+eps, r)
	a := e.proj.ProjectX(Vec3{X: x0, Z: z0})
	b := e.proj.ProjectX(Vec3{X: x1, Z: z1})
	return (b - a) / (2 * eps)
}

func (e *Engine) hitTest(x, y float64) int {
	if e.hit == nil {
		return NoItem
	}
	i := e.hit.HitTest(x, y)
	if !e.ring.Contains(i) {
		return NoItem
	}
	return i
}

func hypot(dx, dy float64) float64 { return math.Hypot(dx, dy) }
