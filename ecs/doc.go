// Package ecs bridges trellis interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every pointer, hover, click and drag event the
// scene routes as an [InteractionEventType] event. Events carry the node ID
// and name, so ECS systems can map them back to entities without holding
// node pointers.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
