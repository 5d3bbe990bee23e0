// Package ecs provides ECS adapters for sway's transition events.
//
// The primary adapter is [NewDonburiSink], which republishes every relation a
// [sway.Transitioner] animates into a [Donburi] world as a typed event.
// Subscribe to [TransitionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	tr := sway.NewTransitioner(sway.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
