// Package ecs bridges carousel events into an ECS world.
//
// [NewDonburiSink] forwards every event an engine emits (focus changes,
// drags, holds, taps, open and close, front changes and alignment) into a
// [Donburi] world as typed events. Subscribe to [CarouselEventType] in your
// systems to receive them.
//
// Usage:
//
//	engine.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
