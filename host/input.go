package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/carousel"
)

// maxPointers is the mouse (slot 0) plus nine touch slots.
const maxPointers = 10

// PointerSink receives pointer edges. *carousel.Engine implements it.
type PointerSink interface {
	PointerDown(ev carousel.PointerEvent)
	PointerMove(ev carousel.PointerEvent)
	PointerUp(ev carousel.PointerEvent)
	WheelNotches(notches float64)
	CloseItem() bool
}

type pointerSlot struct {
	down         bool
	lastX, lastY float64
	seen         bool
}

// Input turns ebiten's polled mouse, touch, wheel and keyboard state into
// pointer events: pointer 0 is the mouse, touches occupy slots 1-9. Escape
// closes the open item.
type Input struct {
	slots        [maxPointers]pointerSlot
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
}

// NewInput returns an Input with no pointers down.
func NewInput() *Input {
	return &Input{}
}

// Poll reads this frame's input and forwards it to sink. Call once per
// ebiten Update, before the engine's Update.
func (in *Input) Poll(sink PointerSink) {
	mx, my := ebiten.CursorPosition()
	in.process(sink, 0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), carousel.PointerMouse)
	in.processTouches(sink)

	if _, yoff := ebiten.Wheel(); yoff != 0 {
		sink.WheelNotches(yoff)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		sink.CloseItem()
	}
}

func (in *Input) processTouches(sink PointerSink) {
	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.process(sink, slot, float64(tx), float64(ty), true, carousel.PointerTouch)
	}

	// Lifted fingers release at their last position.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			s := &in.slots[i]
			in.process(sink, i, s.lastX, s.lastY, false, carousel.PointerTouch)
			in.touchUsed[i] = false
			in.touchMap[i] = 0
			*s = pointerSlot{}
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9), allocating one
// if needed. Returns -1 when every slot is taken.
func (in *Input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// process turns one pointer's polled state into down, move and up edges.
// Mouse moves are reported while the button is up too, so hover works;
// an unmoved pointer generates nothing.
func (in *Input) process(sink PointerSink, id int, x, y float64, pressed bool, typ carousel.PointerType) {
	s := &in.slots[id]
	ev := carousel.PointerEvent{X: x, Y: y, PointerID: id, Type: typ}
	moved := !s.seen || x != s.lastX || y != s.lastY

	switch {
	case pressed && !s.down:
		if moved && typ == carousel.PointerMouse {
			sink.PointerMove(ev)
		}
		sink.PointerDown(ev)
	case !pressed && s.down:
		if moved {
			sink.PointerMove(ev)
		}
		sink.PointerUp(ev)
	case moved && (pressed || typ == carousel.PointerMouse):
		sink.PointerMove(ev)
	}

	s.down = pressed
	s.lastX, s.lastY = x, y
	s.seen = true
}
