package carousel

// EventType identifies a kind of carousel event.
type EventType uint8

const (
	EventFocusChange EventType = iota // the emphasised item changed (Index may be NoItem)
	EventDragStart                    // movement crossed the drag threshold on a grabbed item
	EventDragEnd                      // a drag ended; Velocity holds the fling impulse
	EventHoldStart                    // a touch/pen press was held long enough to pause the ring
	EventTap                          // press and release on the same item without drag or hold
	EventOpen                         // an item was opened (lightbox)
	EventClose                        // the open item was closed
	EventFrontChange                  // the front-facing item changed; Phase advanced
	EventAligned                      // the front item became squarely aligned with the camera

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	"focus-change", "drag-start", "drag-end", "hold-start", "tap",
	"open", "close", "front-change", "aligned",
}

// String returns the event name used in logs and scripts.
func (t EventType) String() string {
	if t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event carries the data for a single carousel event.
type Event struct {
	Type EventType
	// Index is the item the event concerns, or NoItem.
	Index int
	// Prev is the previous index for EventFocusChange and EventFrontChange.
	Prev int
	// Phase is the caption phase (1..6) after an EventFrontChange.
	Phase int
	// X and Y are the pointer position for gesture events.
	X, Y float64
	// Velocity is the angular impulse (rad/s) added by an EventDragEnd fling.
	Velocity float64
}

// EventSink is the interface for optional event forwarding, e.g. into an ECS.
type EventSink interface {
	Emit(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers [eventTypeCount][]eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			// Build a new slice; a fire in progress keeps ranging over the old one.
			h.reg.handlers[h.event] = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	if t >= eventTypeCount || fn == nil {
		return CallbackHandle{}
	}
	r.nextID++
	id := r.nextID
	r.handlers[t] = append(r.handlers[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

// fire calls the handlers registered when the event started. Handlers
// added or removed by a callback take effect from the next event.
func (r *handlerRegistry) fire(e Event) {
	for _, h := range r.handlers[e.Type] {
		h.fn(e)
	}
}

// On registers a callback for events of type t.
func (e *Engine) On(t EventType, fn func(Event)) CallbackHandle {
	return e.handlers.add(t, fn)
}

// SetEventSink sets the optional event forwarder. Pass nil to detach.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// emit delivers ev to registered callbacks first, then to the sink.
func (e *Engine) emit(ev Event) {
	e.handlers.fire(ev)
	if e.sink != nil {
		e.sink.Emit(ev)
	}
}
