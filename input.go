package carousel

import "time"

// wheelLineHeight is the deltaY reported for one wheel notch by hosts that
// count notches rather than pixels.
const wheelLineHeight = 100.0

// GesturePhase is the state of the pointer gesture tracker.
type GesturePhase uint8

const (
	GestureIdle     GesturePhase = iota // no gesture, or a press that missed the ring
	GestureArmed                        // pressed on an item, not yet moved or held
	GestureDragging                     // moved past the threshold; the ring follows the pointer
	GestureHolding                      // touch/pen held still; the ring is paused on the item
)

// String returns the phase name.
func (p GesturePhase) String() string {
	switch p {
	case GestureArmed:
		return "armed"
	case GestureDragging:
		return "dragging"
	case GestureHolding:
		return "holding"
	default:
		return "idle"
	}
}

// gestureState is reset at every pointer-down and pointer-up boundary.
type gestureState struct {
	phase       GesturePhase
	down        bool
	pointerID   int
	pointerType PointerType
	grabbed     int
	holdIndex   int

	startX, startY float64
	lastX, lastY   float64
	lastTime       time.Time
	// velocity is the smoothed horizontal drag speed in px/s.
	velocity float64

	hold TimerHandle
}

func (g *gestureState) reset() {
	g.hold.Cancel()
	*g = gestureState{grabbed: NoItem, holdIndex: NoItem}
}

// Gesture returns the tracker's current phase.
func (e *Engine) Gesture() GesturePhase { return e.gesture.phase }

// movedPast reports whether (x, y) is farther than the drag threshold from
// the press position.
func (e *Engine) movedPast(x, y float64) bool {
	g := &e.gesture
	return hypot(x-g.startX, y-g.startY) > e.cfg.DragThreshold
}

// PointerDown starts a gesture. A press on an item arms it; on touch and
// pen a hold timer starts too.
func (e *Engine) PointerDown(ev PointerEvent) {
	now := e.clock.Now()
	e.timers.run(now)

	// A new press always supersedes whatever gesture was in flight.
	if e.gesture.down {
		e.finishGesture(e.gesture.pointerID, false)
	}

	hit := e.hitTest(ev.X, ev.Y)
	g := &e.gesture
	g.reset()
	g.down = true
	g.pointerID = ev.PointerID
	g.pointerType = ev.Type
	g.grabbed = hit
	g.startX, g.startY = ev.X, ev.Y
	g.lastX, g.lastY = ev.X, ev.Y
	g.lastTime = now

	if hit == NoItem {
		return
	}
	g.phase = GestureArmed
	e.ppr = e.pixelsPerRadianAt(hit)
	e.capturePointer(ev.PointerID)
	if ev.Type.holds() {
		g.holdIndex = hit
		g.hold = e.timers.after(now, e.cfg.HoldDuration, e.engageHold)
	}
	e.debugf("armed on %d (%s)", hit, ev.Type)
}

// engageHold is the hold timer's action.
func (e *Engine) engageHold() {
	g := &e.gesture
	if g.phase != GestureArmed || !g.down {
		return
	}
	g.phase = GestureHolding
	g.hold = TimerHandle{}
	e.syncFreeze()
	e.refreshFocus()
	e.debugf("holding %d", g.holdIndex)
	e.emit(Event{Type: EventHoldStart, Index: g.holdIndex, Prev: NoItem, X: g.startX, Y: g.startY})
}

// PointerMove updates hover and, for the pointer that owns the gesture,
// drives the drag.
func (e *Engine) PointerMove(ev PointerEvent) {
	now := e.clock.Now()
	e.timers.run(now)

	e.hovered = e.hitTest(ev.X, ev.Y)
	e.coasting = false

	g := &e.gesture
	if !g.down || ev.PointerID != g.pointerID {
		e.syncFreeze()
		e.refreshFocus()
		return
	}

	if (g.phase == GestureArmed || g.phase == GestureHolding) && e.movedPast(ev.X, ev.Y) {
		g.hold.Cancel()
		g.hold = TimerHandle{}
		g.phase = GestureDragging
		e.camera.Enabled = false
		e.debugf("dragging %d", g.grabbed)
		e.emit(Event{Type: EventDragStart, Index: g.grabbed, Prev: NoItem, X: ev.X, Y: ev.Y})
	}

	if g.phase == GestureDragging {
		dx := ev.X - g.lastX
		dt := max(0.001, now.Sub(g.lastTime).Seconds())
		g.velocity += (dx/dt - g.velocity) * e.cfg.DragVelocityBlend

		e.ppr = e.pixelsPerRadianAt(g.grabbed)
		if ppr := e.spin.usablePPR(e.ppr); ppr != 0 {
			e.spin.Rotate(dx / ppr * e.cfg.DragScale)
		}
		g.lastX = ev.X
		g.lastTime = now
	}
	g.lastY = ev.Y

	e.syncFreeze()
	e.refreshFocus()
}

// PointerUp ends the gesture. A drag flings; a clean press and release on
// the same item is a tap that opens it. Taps while an item is open are
// ignored.
func (e *Engine) PointerUp(ev PointerEvent) {
	e.timers.run(e.clock.Now())

	g := &e.gesture
	if !g.down || ev.PointerID != g.pointerID {
		return
	}
	grabbed := g.grabbed
	suppress := g.phase == GestureDragging || g.phase == GestureHolding || e.movedPast(ev.X, ev.Y)

	e.finishGesture(ev.PointerID, true)

	if suppress || grabbed == NoItem || e.opened != NoItem {
		return
	}
	if hit := e.hitTest(ev.X, ev.Y); hit == grabbed {
		e.emit(Event{Type: EventTap, Index: hit, Prev: NoItem, X: ev.X, Y: ev.Y})
		e.OpenItem(hit)
	}
}

// PointerCancel abandons the gesture without fling or tap.
func (e *Engine) PointerCancel(ev PointerEvent) {
	e.timers.run(e.clock.Now())
	g := &e.gesture
	if !g.down || ev.PointerID != g.pointerID {
		return
	}
	e.finishGesture(ev.PointerID, false)
}

// finishGesture is shared by every gesture-ending path. It always cancels
// the hold timer, so a stale hold can never engage after the gesture.
func (e *Engine) finishGesture(pointerID int, fling bool) {
	g := &e.gesture
	if g.phase == GestureDragging {
		impulse := 0.0
		if fling {
			impulse = e.spin.ApplyFling(g.velocity*e.cfg.FlingScale, e.ppr)
		}
		e.debugf("drag end, fling %.3f rad/s", impulse)
		e.emit(Event{Type: EventDragEnd, Index: g.grabbed, Prev: NoItem, X: g.lastX, Y: g.lastY, Velocity: impulse})
	}
	e.camera.Enabled = true
	touchLike := g.pointerType.holds()
	e.coasting = g.phase == GestureDragging && !touchLike
	if g.phase != GestureIdle {
		e.releasePointer(pointerID)
	}
	g.reset()

	// Touch and pen have no hover once lifted.
	if touchLike {
		e.hovered = NoItem
	}
	e.syncFreeze()
	e.refreshFocus()
}

// Wheel spins the ring while the pointer is over it; elsewhere it zooms the
// camera.
func (e *Engine) Wheel(deltaY float64) {
	if !finite(deltaY) {
		return
	}
	if e.hovered != NoItem {
		e.spin.AddImpulse(-deltaY * e.cfg.ScrollSpinScale)
		return
	}
	if e.ControlsEnabled() {
		e.camera.Zoom(deltaY)
	}
}

// WheelNotches is Wheel for hosts that report notches instead of pixels.
// Positive notches scroll up, as in most desktop toolkits.
func (e *Engine) WheelNotches(notches float64) {
	e.Wheel(-notches * wheelLineHeight)
}

func (e *Engine) capturePointer(id int) {
	if e.capture == nil {
		return
	}
	if err := e.capture.CapturePointer(id); err != nil {
		e.debugf("pointer capture %d: %v", id, err)
	}
}

func (e *Engine) releasePointer(id int) {
	if e.capture == nil {
		return
	}
	if err := e.capture.ReleasePointer(id); err != nil {
		e.debugf("pointer release %d: %v", id, err)
	}
}
