package carousel

import (
	"math"
	"testing"
	"time"
)

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(0, DefaultConfig()); err == nil {
		t.Error("expected error for zero items")
	}
	cfg := DefaultConfig()
	cfg.Damping = 2
	if _, err := New(8, cfg); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestNewStartsNeutral(t *testing.T) {
	e, _ := newTestEngine(t, 6, DefaultConfig())
	if e.Len() != 6 || e.Ring().Len() != 6 {
		t.Fatalf("Len = %d", e.Len())
	}
	for i, it := range e.Items() {
		if it.Index != i || it.Scale != 1 || it.Saturation != 1 || it.Lift != 0 {
			t.Errorf("item %d not neutral: %+v", i, it)
		}
	}
	if e.Focus() != NoItem || e.Opened() != NoItem || e.Hovered() != NoItem {
		t.Error("fresh engine should have no focus, hover or open item")
	}
	if e.Phase() != 1 || e.CaptionIndex() != NoItem {
		t.Errorf("phase=%d caption=%d before the first frame", e.Phase(), e.CaptionIndex())
	}
}

func TestUpdateCapsFrameDelta(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig())

	e.Update()
	if e.Rotation() != 0 {
		t.Errorf("first frame rotated by %v", e.Rotation())
	}

	clock.Advance(time.Second)
	e.Update()
	want := 0.05 * 0.033
	if !approxEqual(e.Rotation(), want, 1e-12) {
		t.Errorf("rotation after a 1s stall = %v, want %v", e.Rotation(), want)
	}
}

func TestUpdateEasesTowardFocus(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitColumns(8)))
	e.PointerMove(mouse(350, 100))

	for i := 0; i < 120; i++ {
		clock.Advance(16 * time.Millisecond)
		e.Update()
	}

	if got := e.Item(3); got.Scale != 1.8 || got.Saturation != 1 || got.Lift != 0 {
		t.Errorf("focused item = %+v", got)
	}
	if got := e.Item(0); got.Saturation != 0 || got.Lift != 0.35 {
		t.Errorf("unfocused item = %+v", got)
	}
	if got := e.Item(2).Scale; !approxEqual(got, 1+0.8*0.7, 1e-9) {
		t.Errorf("neighbour scale = %v, want %v", got, 1+0.8*0.7)
	}
}

func TestUpdateShortFrameDoesNotJump(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitColumns(8)))
	e.Update()
	e.PointerMove(mouse(350, 100))

	// Back-to-back updates while the host catches up.
	clock.Advance(3 * time.Microsecond)
	e.Update()

	if got := e.Item(3); got.Scale != 1 || got.Saturation != 1 {
		t.Errorf("focused item after 3µs = %+v, want still neutral", got)
	}
	if got := e.Item(2).Scale; got != 1 {
		t.Errorf("neighbour scale after 3µs = %v, want 1", got)
	}
	if got := e.Item(0); got.Saturation != 1 || got.Lift != 0 {
		t.Errorf("unfocused item after 3µs = %+v, want still neutral", got)
	}

	clock.Advance(16 * time.Millisecond)
	e.Update()
	if got := e.Item(3).Scale; !(got > 1 && got < 1.8) {
		t.Errorf("focused scale after one frame = %v, want partway to 1.8", got)
	}
	for i := 0; i < 120; i++ {
		clock.Advance(16 * time.Millisecond)
		e.Update()
	}
	if got := e.Item(3).Scale; got != 1.8 {
		t.Errorf("focused scale = %v, want 1.8", got)
	}
}

func TestUpdateFrontEvents(t *testing.T) {
	log := &eventLog{}
	e, clock := newTestEngine(t, 8, DefaultConfig(), WithEventSink(log))

	e.Update()
	ev, ok := log.last(EventFrontChange)
	if !ok || ev.Index != 0 || ev.Prev != NoItem || ev.Phase != 2 {
		t.Fatalf("first front-change = %+v, %v", ev, ok)
	}
	if ev, ok := log.last(EventAligned); !ok || ev.Index != 0 {
		t.Errorf("aligned = %+v, %v", ev, ok)
	}

	// Bring item 2 (at π/2) to the front.
	e.Spin().Rotate(-math.Pi / 2)
	clock.Advance(250 * time.Millisecond)
	e.Update()

	ev, _ = log.last(EventFrontChange)
	if ev.Index != 2 || ev.Prev != 0 || ev.Phase != 3 {
		t.Errorf("second front-change = %+v", ev)
	}
	if e.CaptionIndex() != 2 || e.Phase() != 3 {
		t.Errorf("caption=%d phase=%d", e.CaptionIndex(), e.Phase())
	}
	if got := log.count(EventAligned); got != 2 {
		t.Errorf("aligned fired %d times, want 2", got)
	}
}

func TestOpenItemValidation(t *testing.T) {
	e, _ := newTestEngine(t, 4, DefaultConfig())
	if e.OpenItem(-1) || e.OpenItem(4) {
		t.Error("opening an invalid index should fail")
	}
	if !e.OpenItem(2) {
		t.Fatal("OpenItem(2) failed")
	}
	if e.OpenItem(1) {
		t.Error("opening while another item is open should fail")
	}
}

func TestOpenCloseCameraRoundTrip(t *testing.T) {
	e, clock := newTestEngine(t, 8, DefaultConfig())
	rest := e.Camera().Distance()

	e.OpenItem(1)
	clock.Advance(2 * time.Second)
	e.Update()
	if !approxEqual(e.Camera().Distance(), 70, 1e-6) {
		t.Errorf("open distance = %v, want 70", e.Camera().Distance())
	}

	e.CloseItem()
	clock.Advance(2 * time.Second)
	e.Update()
	if !approxEqual(e.Camera().Distance(), rest, 1e-6) {
		t.Errorf("closed distance = %v, want %v", e.Camera().Distance(), rest)
	}
}

func TestKickClamped(t *testing.T) {
	e, _ := newTestEngine(t, 8, DefaultConfig())
	e.Kick(100)
	if e.Velocity() != 2.5 {
		t.Errorf("velocity = %v, want 2.5", e.Velocity())
	}
	e.Kick(-0.5)
	if e.Velocity() != -0.5 {
		t.Errorf("velocity = %v, want -0.5", e.Velocity())
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	a, _ := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(1)))
	b, _ := newTestEngine(t, 8, DefaultConfig(), WithHitTester(hitAlways(1)))

	a.Kick(1)
	a.PointerMove(mouse(10, 10))
	if b.Velocity() != 0 || b.Focus() != NoItem || b.Frozen() {
		t.Error("state leaked between engines")
	}
}

// --- Events ---

func TestHandlersRunBeforeSink(t *testing.T) {
	var order []string
	sink := sinkFunc(func(Event) { order = append(order, "sink") })
	e, _ := newTestEngine(t, 4, DefaultConfig(), WithEventSink(sink))
	e.On(EventOpen, func(Event) { order = append(order, "handler") })

	e.OpenItem(0)
	if len(order) != 2 || order[0] != "handler" || order[1] != "sink" {
		t.Errorf("order = %v, want [handler sink]", order)
	}
}

type sinkFunc func(Event)

func (f sinkFunc) Emit(ev Event) { f(ev) }

func TestCallbackHandleRemove(t *testing.T) {
	e, _ := newTestEngine(t, 4, DefaultConfig())
	calls := 0
	h := e.On(EventOpen, func(Event) { calls++ })
	keep := 0
	e.On(EventOpen, func(Event) { keep++ })

	h.Remove()
	h.Remove()
	e.OpenItem(0)

	if calls != 0 {
		t.Errorf("removed handler called %d times", calls)
	}
	if keep != 1 {
		t.Errorf("remaining handler called %d times, want 1", keep)
	}
}

func TestCallbackRemovedDuringFire(t *testing.T) {
	e, _ := newTestEngine(t, 4, DefaultConfig())
	var calls []string
	var self CallbackHandle
	self = e.On(EventOpen, func(Event) {
		calls = append(calls, "once")
		self.Remove()
	})
	e.On(EventOpen, func(Event) { calls = append(calls, "a") })
	e.On(EventOpen, func(Event) { calls = append(calls, "b") })

	e.OpenItem(0)
	e.CloseItem()
	e.OpenItem(1)

	want := []string{"once", "a", "b", "a", "b"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestOnIgnoresBadInput(t *testing.T) {
	e, _ := newTestEngine(t, 4, DefaultConfig())
	h := e.On(EventOpen, nil)
	h.Remove()
	h = e.On(eventTypeCount, func(Event) {})
	h.Remove()
	var zero CallbackHandle
	zero.Remove()
}

func TestSetEventSinkDetach(t *testing.T) {
	log := &eventLog{}
	e, _ := newTestEngine(t, 4, DefaultConfig())
	e.SetEventSink(log)
	e.OpenItem(0)
	e.SetEventSink(nil)
	e.CloseItem()
	if log.count(EventOpen) != 1 || log.count(EventClose) != 0 {
		t.Errorf("sink saw %v", log.events)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventFocusChange, "focus-change"},
		{EventDragEnd, "drag-end"},
		{EventTap, "tap"},
		{EventAligned, "aligned"},
		{EventType(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestPointerTypeRoundTrip(t *testing.T) {
	for _, p := range []PointerType{PointerMouse, PointerTouch, PointerPen} {
		if got := ParsePointerType(p.String()); got != p {
			t.Errorf("ParsePointerType(%q) = %v", p.String(), got)
		}
	}
	if ParsePointerType("trackball") != PointerMouse {
		t.Error("unknown pointer names should map to mouse")
	}
}
