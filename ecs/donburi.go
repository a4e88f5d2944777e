package ecs

import (
	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for trellis interaction
// events. Subscribe to it and call ProcessEvents once per tick.
var InteractionEventType = events.NewEventType[trellis.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
func NewDonburiStore(world donburi.World) trellis.EntityStore {
	return &donburiStore{world: world}
}

// EmitEvent queues the event on the world. The node pointer is dropped so
// queued events do not keep disposed nodes alive.
func (s *donburiStore) EmitEvent(event trellis.InteractionEvent) {
	event.Node = nil
	InteractionEventType.Publish(s.world, event)
}
