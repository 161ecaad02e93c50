// Package carousel is the interaction and animation engine for a 3D photo
// ring: items evenly spaced on a circle, spun by an idle drift, the mouse
// wheel, and drag/fling gestures, with a focus emphasis field that enlarges
// and colours the item under the pointer while greying the rest.
//
// The engine owns no renderer. A host feeds it pointer and wheel events,
// calls [Engine.Update] once per frame, and reads back the ring rotation,
// the per-item [Item] values, and the front-facing index. The host package
// github.com/phanxgames/carousel/host provides an [Ebitengine] host.
//
// # Quick start
//
//	cfg := carousel.DefaultConfig()
//	eng, err := carousel.New(len(urls), cfg, carousel.WithHitTester(view))
//	if err != nil {
//		log.Fatal(err)
//	}
//	eng.On(carousel.EventFrontChange, func(e carousel.Event) {
//		caption.SetPhase(e.Phase)
//	})
//
//	// every frame
//	eng.Update()
//	for _, it := range eng.Items() {
//		draw(it.Index, eng.Rotation(), it.Scale, it.Saturation, it.Lift)
//	}
//
// # Gestures
//
// A pointer pressed on an item arms a gesture. Moving past the drag
// threshold turns it into a drag that rotates the ring directly and flings
// on release. Touch and pen pointers that stay still for the hold duration
// pause the ring and focus the pressed item. A press and release that never
// crossed the threshold is a tap and opens the item.
//
// Focus priority is drag, then hold, then hover.
//
// # Time
//
// All wall-clock measurements come from the [Clock] passed with
// [WithClock]. Tests use [ManualClock] to step time explicitly.
//
// [Ebitengine]: https://ebitengine.org
package carousel
