package carousel

import (
	"errors"
	"math"
	"testing"
	"time"
)

// --- Helpers ---

func newTestEngine(t *testing.T, n int, cfg Config, opts ...Option) (*Engine, *ManualClock) {
	t.Helper()
	clock := NewManualClock(time.Unix(1000, 0))
	e, err := New(n, cfg, append([]Option{WithClock(clock)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, clock
}

// hitAlways reports item i everywhere.
func hitAlways(i int) HitTester {
	return HitTestFunc(func(x, y float64) int { return i })
}

// hitColumns maps 100px-wide screen columns to items, starting at x=0.
func hitColumns(n int) HitTester {
	return HitTestFunc(func(x, y float64) int {
		if x < 0 {
			return NoItem
		}
		if i := int(x / 100); i < n {
			return i
		}
		return NoItem
	})
}

type eventLog struct {
	events []Event
}

func (l *eventLog) Emit(ev Event) { l.events = append(l.events, ev) }

func (l *eventLog) count(t EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (l *eventLog) last(t EventType) (Event, bool) {
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Type == t {
			return l.events[i], true
		}
	}
	return Event{}, false
}

func touch(x, y float64) PointerEvent { return PointerEvent{X: x, Y: y, Type: PointerTouch} }
func mouse(x, y float64) PointerEvent { return PointerEvent{X: x, Y: y, Type: PointerMouse} }

// --- Hold ---

func TestHoldWithTouch(t *testing.T) {
	log := &eventLog{}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)), WithEventSink(log))

	e.PointerDown(touch(100, 100))
	if e.Gesture() != GestureArmed {
		t.Fatalf("after press: %s, want armed", e.Gesture())
	}

	clock.Advance(50 * time.Millisecond)
	e.PointerMove(touch(103, 100))
	if e.Gesture() != GestureArmed {
		t.Fatalf("after 3px move: %s, want armed", e.Gesture())
	}

	clock.Advance(400 * time.Millisecond)
	e.Update()
	if e.Gesture() != GestureHolding {
		t.Fatalf("after 450ms: %s, want holding", e.Gesture())
	}
	if e.Focus() != 3 || !e.Frozen() {
		t.Errorf("holding: focus=%d frozen=%v, want 3/true", e.Focus(), e.Frozen())
	}
	if got := log.count(EventHoldStart); got != 1 {
		t.Errorf("hold-start fired %d times, want 1", got)
	}

	e.PointerUp(touch(103, 100))
	if e.Gesture() != GestureIdle {
		t.Errorf("after release: %s, want idle", e.Gesture())
	}
	if e.Focus() != NoItem || e.Frozen() {
		t.Errorf("after release: focus=%d frozen=%v, want none/false", e.Focus(), e.Frozen())
	}
	if e.Velocity() != 0 {
		t.Errorf("hold release added velocity %v", e.Velocity())
	}
	if log.count(EventTap) != 0 || e.Opened() != NoItem {
		t.Error("releasing a hold must not tap")
	}
}

func TestHoldNeverEngagesForMouse(t *testing.T) {
	log := &eventLog{}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)), WithEventSink(log))

	e.PointerDown(mouse(100, 100))
	clock.Advance(time.Second)
	e.Update()
	if e.Gesture() != GestureArmed || log.count(EventHoldStart) != 0 {
		t.Errorf("mouse press held: %s", e.Gesture())
	}
}

func TestHoldCancelledByDrag(t *testing.T) {
	log := &eventLog{}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)), WithEventSink(log))

	e.PointerDown(touch(100, 100))
	clock.Advance(50 * time.Millisecond)
	e.PointerMove(touch(120, 100))
	clock.Advance(400 * time.Millisecond)
	e.Update()

	if e.Gesture() != GestureDragging {
		t.Errorf("gesture = %s, want dragging", e.Gesture())
	}
	if log.count(EventHoldStart) != 0 {
		t.Error("hold engaged after the pointer started dragging")
	}
}

func TestStaleHoldTimerNeverFires(t *testing.T) {
	log := &eventLog{}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)), WithEventSink(log))

	e.PointerDown(touch(100, 100))
	clock.Advance(100 * time.Millisecond)
	e.PointerUp(touch(100, 100))
	e.CloseItem()

	// A fresh mouse press on the same item: the old touch deadline passes
	// while it is armed.
	clock.Advance(50 * time.Millisecond)
	e.PointerDown(mouse(100, 100))
	clock.Advance(400 * time.Millisecond)
	e.Update()

	if e.Gesture() != GestureArmed {
		t.Errorf("gesture = %s, want armed", e.Gesture())
	}
	if log.count(EventHoldStart) != 0 {
		t.Error("stale hold timer engaged")
	}
}

func TestHoldThenDrag(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)))

	e.PointerDown(touch(100, 100))
	clock.Advance(400 * time.Millisecond)
	e.Update()
	if e.Gesture() != GestureHolding {
		t.Fatalf("gesture = %s, want holding", e.Gesture())
	}

	clock.Advance(10 * time.Millisecond)
	e.PointerMove(touch(130, 100))
	if e.Gesture() != GestureDragging {
		t.Errorf("gesture = %s, want dragging", e.Gesture())
	}
	if e.Frozen() {
		t.Error("ring should not stay frozen once the hold turns into a drag")
	}
}

// --- Drag and fling ---

func dragRight(e *Engine, clock *ManualClock) {
	e.PointerDown(mouse(100, 300))
	for k := 1; k <= 20; k++ {
		clock.Advance(10 * time.Millisecond)
		e.PointerMove(mouse(100+float64(10*k), 300))
	}
}

func TestDragFlingClamped(t *testing.T) {
	log := &eventLog{}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)), WithEventSink(log))

	dragRight(e, clock)
	if e.Gesture() != GestureDragging {
		t.Fatalf("gesture = %s, want dragging", e.Gesture())
	}
	if e.ControlsEnabled() || e.Camera().Enabled {
		t.Error("camera controls should be disabled during a drag")
	}
	// 200px at 300 px/rad.
	if !approxEqual(e.Rotation(), 200.0/300, 1e-9) {
		t.Errorf("rotation = %v, want %v", e.Rotation(), 200.0/300)
	}

	e.PointerUp(mouse(300, 300))

	if e.Velocity() != 2.5 {
		t.Errorf("velocity = %v, want clamp 2.5", e.Velocity())
	}
	ev, ok := log.last(EventDragEnd)
	if !ok {
		t.Fatal("no drag-end event")
	}
	if !approxEqual(ev.Velocity, 1000.0/300, 0.02) {
		t.Errorf("fling impulse = %v, want ~%v", ev.Velocity, 1000.0/300)
	}
	if log.count(EventTap) != 0 || e.Opened() != NoItem {
		t.Error("drag release must not tap")
	}
	if !e.ControlsEnabled() || !e.Camera().Enabled {
		t.Error("camera controls should be restored after the drag")
	}
}

func TestFlingCoastsUntilHoverMoves(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)))
	e.Update()

	dragRight(e, clock)
	e.PointerUp(mouse(300, 300))
	if e.Frozen() {
		t.Fatal("ring frozen right after a mouse drag ended over an item")
	}

	before := e.Rotation()
	clock.Advance(16 * time.Millisecond)
	e.Update()
	if got := e.Rotation() - before; got < 0.02 {
		t.Errorf("fling rotated %v in one frame, want the ring to coast", got)
	}

	// The next move over the item pauses the ring as hover normally does.
	e.PointerMove(mouse(301, 300))
	if !e.Frozen() || e.Focus() != 3 {
		t.Errorf("after moving: frozen=%v focus=%d, want true/3", e.Frozen(), e.Focus())
	}
}

func TestDragFlingUnclamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSpinVelocity = 10
	e, clock := newTestEngine(t, 8, cfg, WithHitTester(hitAlways(3)))

	dragRight(e, clock)
	e.PointerUp(mouse(300, 300))

	if !approxEqual(e.Velocity(), 1000.0/300, 0.02) {
		t.Errorf("velocity = %v, want ~%v", e.Velocity(), 1000.0/300)
	}
}

func TestDragFocusBeatsHover(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitColumns(8)))

	e.PointerDown(mouse(150, 100)) // item 1
	clock.Advance(10 * time.Millisecond)
	e.PointerMove(mouse(550, 100)) // over item 5

	if e.Hovered() != 5 {
		t.Errorf("hovered = %d, want 5", e.Hovered())
	}
	if e.Focus() != 1 {
		t.Errorf("focus = %d, want grabbed item 1", e.Focus())
	}
	if e.Frozen() {
		t.Error("dragging must not freeze the ring")
	}
}

func TestCancelDragDoesNotFling(t *testing.T) {
	log := &eventLog{}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)), WithEventSink(log))

	dragRight(e, clock)
	e.PointerCancel(mouse(0, 0))

	if e.Velocity() != 0 {
		t.Errorf("velocity after cancel = %v, want 0", e.Velocity())
	}
	ev, ok := log.last(EventDragEnd)
	if !ok || ev.Velocity != 0 {
		t.Errorf("drag-end after cancel: %+v, %v", ev, ok)
	}
	if e.Gesture() != GestureIdle {
		t.Errorf("gesture = %s, want idle", e.Gesture())
	}
}

func TestDragIgnoresOtherPointers(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)))

	e.PointerDown(PointerEvent{X: 100, Y: 100, PointerID: 1, Type: PointerTouch})
	clock.Advance(10 * time.Millisecond)
	e.PointerMove(PointerEvent{X: 300, Y: 100, PointerID: 2, Type: PointerTouch})

	if e.Gesture() != GestureArmed || e.Rotation() != 0 {
		t.Errorf("second pointer drove the gesture: %s rotation %v", e.Gesture(), e.Rotation())
	}
}

func TestPressOutsideRingStaysIdle(t *testing.T) {
	e, _ := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(NoItem)))
	e.PointerDown(mouse(10, 10))
	e.PointerMove(mouse(300, 10))
	if e.Gesture() != GestureIdle || e.Rotation() != 0 {
		t.Errorf("press on empty space started a gesture: %s", e.Gesture())
	}
}

// --- Tap ---

func TestTapOpensItem(t *testing.T) {
	log := &eventLog{}
	e, _ := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)), WithEventSink(log))
	e.Kick(1.5)

	e.PointerDown(mouse(100, 100))
	e.PointerUp(mouse(102, 101))

	if log.count(EventTap) != 1 || e.Opened() != 3 {
		t.Fatalf("tap: events=%d opened=%d", log.count(EventTap), e.Opened())
	}
	if !e.Frozen() || e.Velocity() != 0 {
		t.Errorf("open item: frozen=%v velocity=%v", e.Frozen(), e.Velocity())
	}
	if !e.Camera().Animating() {
		t.Error("opening should start a camera move")
	}

	// A second tap while open changes nothing and reports no tap.
	e.PointerDown(mouse(100, 100))
	e.PointerUp(mouse(100, 100))
	if log.count(EventOpen) != 1 {
		t.Errorf("open fired %d times, want 1", log.count(EventOpen))
	}
	if log.count(EventTap) != 1 {
		t.Errorf("tap fired %d times while open, want 1 in total", log.count(EventTap))
	}

	if !e.CloseItem() || e.Opened() != NoItem {
		t.Fatal("CloseItem failed")
	}
	if e.Frozen() {
		t.Error("ring still frozen after close")
	}
	if e.CloseItem() {
		t.Error("closing twice should report false")
	}
}

func TestTapSuppressed(t *testing.T) {
	tests := []struct {
		name    string
		gesture func(e *Engine, clock *ManualClock)
	}{
		{"drag back to start", func(e *Engine, clock *ManualClock) {
			e.PointerDown(mouse(150, 100))
			clock.Advance(10 * time.Millisecond)
			e.PointerMove(mouse(165, 100))
			clock.Advance(10 * time.Millisecond)
			e.PointerMove(mouse(150, 100))
			e.PointerUp(mouse(150, 100))
		}},
		{"release on another item", func(e *Engine, clock *ManualClock) {
			e.PointerDown(mouse(198, 100))
			e.PointerUp(mouse(202, 100))
		}},
		{"release off the ring", func(e *Engine, clock *ManualClock) {
			e.PointerDown(mouse(150, 2))
			e.PointerUp(mouse(150, -2))
		}},
		{"press on empty space", func(e *Engine, clock *ManualClock) {
			e.PointerDown(mouse(-20, 100))
			e.PointerUp(mouse(-20, 100))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := HitTestFunc(func(x, y float64) int {
				if y < 0 || x < 0 {
					return NoItem
				}
				return int(x / 100)
			})
			log := &eventLog{}
			e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hit), WithEventSink(log))
			tt.gesture(e, clock)
			if log.count(EventTap) != 0 || e.Opened() != NoItem {
				t.Errorf("tap fired: opened=%d", e.Opened())
			}
		})
	}
}

// --- Hover and wheel ---

func TestHoverFocusesAndFreezes(t *testing.T) {
	log := &eventLog{}
	e, _ := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitColumns(8)), WithEventSink(log))

	e.PointerMove(mouse(350, 100))
	if e.Focus() != 3 || !e.Frozen() {
		t.Errorf("hover: focus=%d frozen=%v", e.Focus(), e.Frozen())
	}
	e.PointerMove(mouse(360, 120))
	e.PointerMove(mouse(-10, 100))
	if e.Focus() != NoItem || e.Frozen() {
		t.Errorf("hover out: focus=%d frozen=%v", e.Focus(), e.Frozen())
	}
	if got := log.count(EventFocusChange); got != 2 {
		t.Errorf("focus-change fired %d times, want 2", got)
	}
}

func TestWheelOverRingSpins(t *testing.T) {
	e, _ := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(2)))
	e.PointerMove(mouse(100, 100))
	e.Wheel(100)
	if !approxEqual(e.Velocity(), -0.035, 1e-12) {
		t.Errorf("velocity = %v, want -0.035", e.Velocity())
	}
	if e.Camera().TargetDistance() != e.Camera().Distance() {
		t.Error("wheel over the ring should not zoom")
	}
}

func TestWheelOffRingZooms(t *testing.T) {
	e, _ := newTestEngine(t, 8, DefaultConfig())
	before := e.Camera().TargetDistance()
	e.WheelNotches(-1) // one notch down: +100px
	if !approxEqual(e.Camera().TargetDistance(), before+5, 1e-9) {
		t.Errorf("target = %v, want %v", e.Camera().TargetDistance(), before+5)
	}
	if e.Velocity() != 0 {
		t.Error("zoom changed spin")
	}
}

func TestWheelIgnoredDuringDrag(t *testing.T) {
	hit := HitTestFunc(func(x, y float64) int {
		if y > 200 {
			return NoItem
		}
		return 1
	})
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hit))
	e.PointerDown(mouse(100, 100))
	clock.Advance(10 * time.Millisecond)
	e.PointerMove(mouse(100, 300)) // dragging, hover off the ring
	before := e.Camera().TargetDistance()
	e.Wheel(200)
	if e.Camera().TargetDistance() != before {
		t.Error("zoom applied while controls were disabled")
	}
}

// --- Pixels per radian ---

type linearProjector struct {
	scale, width float64
}

func (p linearProjector) ProjectX(v Vec3) float64 { return p.width/2 + v.X*p.scale }
func (p linearProjector) ViewportWidth() float64  { return p.width }

func TestPixelsPerRadianFromProjection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = 10
	e, _ := newTestEngine(t, 8, cfg, WithHitTester(hitAlways(0)), WithProjector(linearProjector{scale: 10, width: 800}))

	e.PointerDown(mouse(400, 300))
	// d/dθ of 10·sin(θ)·R at θ=0 is 100.
	if !approxEqual(e.PixelsPerRadian(), 100, 1e-3) {
		t.Errorf("ppr = %v, want 100", e.PixelsPerRadian())
	}
}

func TestPixelsPerRadianSideItemFallsBackToOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = 10
	// Item 2 sits at π/2 where the projection is flat.
	e, _ := newTestEngine(t, 8, cfg, WithHitTester(hitAlways(2)), WithProjector(linearProjector{scale: 10, width: 800}))

	e.PointerDown(mouse(400, 300))
	if !approxEqual(e.PixelsPerRadian(), 100, 1e-3) {
		t.Errorf("ppr = %v, want origin estimate 100", e.PixelsPerRadian())
	}
}

type flatProjector struct{}

func (flatProjector) ProjectX(Vec3) float64  { return 400 }
func (flatProjector) ViewportWidth() float64 { return 800 }

func TestPixelsPerRadianDegenerateProjection(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(0)), WithProjector(flatProjector{}))

	e.PointerDown(mouse(400, 300))
	want := 800 / (2 * math.Pi)
	if !approxEqual(e.PixelsPerRadian(), want, 1e-9) {
		t.Errorf("ppr = %v, want %v", e.PixelsPerRadian(), want)
	}

	clock.Advance(10 * time.Millisecond)
	e.PointerMove(mouse(500, 300))
	if r := e.Rotation(); !finite(r) || !approxEqual(r, 100/want, 1e-9) {
		t.Errorf("rotation = %v, want %v", r, 100/want)
	}
}

// --- Pointer capture ---

type recordingCapturer struct {
	captured, released []int
	err                error
}

func (c *recordingCapturer) CapturePointer(id int) error {
	c.captured = append(c.captured, id)
	return c.err
}

func (c *recordingCapturer) ReleasePointer(id int) error {
	c.released = append(c.released, id)
	return c.err
}

func TestPointerCaptureBestEffort(t *testing.T) {
	pc := &recordingCapturer{err: errors.New("not supported")}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(1)), WithPointerCapturer(pc))
	e.SetDebugMode(true)

	e.PointerDown(PointerEvent{X: 100, Y: 100, PointerID: 4, Type: PointerTouch})
	clock.Advance(10 * time.Millisecond)
	e.PointerMove(PointerEvent{X: 150, Y: 100, PointerID: 4, Type: PointerTouch})
	e.PointerUp(PointerEvent{X: 150, Y: 100, PointerID: 4, Type: PointerTouch})

	if len(pc.captured) != 1 || pc.captured[0] != 4 {
		t.Errorf("captured = %v, want [4]", pc.captured)
	}
	if len(pc.released) != 1 || pc.released[0] != 4 {
		t.Errorf("released = %v, want [4]", pc.released)
	}
	if e.Gesture() != GestureIdle {
		t.Errorf("failing capture broke the gesture: %s", e.Gesture())
	}
}

func TestNewPressSupersedesGesture(t *testing.T) {
	log := &eventLog{}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(3)), WithEventSink(log))

	dragRight(e, clock)
	e.PointerDown(PointerEvent{X: 50, Y: 50, PointerID: 7, Type: PointerTouch})

	if ev, ok := log.last(EventDragEnd); !ok || ev.Velocity != 0 {
		t.Errorf("superseded drag should end without fling: %+v", ev)
	}
	if e.Velocity() != 0 {
		t.Errorf("velocity = %v, want 0", e.Velocity())
	}
	if e.Gesture() != GestureArmed {
		t.Errorf("gesture = %s, want armed", e.Gesture())
	}
}

func TestGesturePhaseString(t *testing.T) {
	tests := map[GesturePhase]string{
		GestureIdle:     "idle",
		GestureArmed:    "armed",
		GestureDragging: "dragging",
		GestureHolding:  "holding",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", p, got, want)
		}
	}
}
