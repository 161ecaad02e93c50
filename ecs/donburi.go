package ecs

import (
	"github.com/phanxgames/carousel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CarouselEventType is the Donburi event type for carousel events.
// Subscribe to it in your ECS systems to receive focus, gesture, open and
// front-change events.
var CarouselEventType = events.NewEventType[carousel.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on CarouselEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) carousel.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event carousel.Event) {
	CarouselEventType.Publish(s.world, event)
}
