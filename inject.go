package carousel

type syntheticKind uint8

const (
	syntheticDown syntheticKind = iota
	syntheticMove
	syntheticUp
	syntheticCancel
	syntheticWheel
)

// syntheticEvent is a single injected input event, consumed one per frame
// at the start of Update.
type syntheticEvent struct {
	kind   syntheticKind
	ev     PointerEvent
	deltaY float64
}

// InjectPress queues a pointer press at the given screen coordinates.
func (e *Engine) InjectPress(x, y float64, typ PointerType) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind: syntheticDown,
		ev:   PointerEvent{X: x, Y: y, Type: typ},
	})
}

// InjectMove queues a pointer move. Without a preceding press it is a hover.
func (e *Engine) InjectMove(x, y float64, typ PointerType) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind: syntheticMove,
		ev:   PointerEvent{X: x, Y: y, Type: typ},
	})
}

// InjectRelease queues a pointer release.
func (e *Engine) InjectRelease(x, y float64, typ PointerType) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind: syntheticUp,
		ev:   PointerEvent{X: x, Y: y, Type: typ},
	})
}

// InjectCancel queues a pointer cancel.
func (e *Engine) InjectCancel(typ PointerType) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind: syntheticCancel,
		ev:   PointerEvent{Type: typ},
	})
}

// InjectWheel queues a wheel event with the given deltaY.
func (e *Engine) InjectWheel(deltaY float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticWheel, deltaY: deltaY})
}

// InjectClick queues a mouse press followed by a release at the same
// coordinates. Consumes two frames.
func (e *Engine) InjectClick(x, y float64) {
	e.InjectPress(x, y, PointerMouse)
	e.InjectRelease(x, y, PointerMouse)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 evenly
// spaced moves, and release at (toX, toY). Minimum frames is 2.
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int, typ PointerType) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY, typ)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, typ)
	}
	e.InjectRelease(toX, toY, typ)
}

// InjectPending returns the number of queued synthetic events.
func (e *Engine) InjectPending() int { return len(e.injectQueue) }

// processInjected pops one queued event and dispatches it. It reports
// whether an event was consumed.
func (e *Engine) processInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case syntheticDown:
		e.PointerDown(evt.ev)
	case syntheticMove:
		e.PointerMove(evt.ev)
	case syntheticUp:
		e.PointerUp(evt.ev)
	case syntheticCancel:
		e.PointerCancel(evt.ev)
	case syntheticWheel:
		e.Wheel(evt.deltaY)
	}
	return true
}
