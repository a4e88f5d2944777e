package ecs

import (
	"testing"

	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []trellis.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e trellis.InteractionEvent) {
		received = append(received, e)
	})

	node := trellis.NewBox("button", 10, 10)
	store.EmitEvent(trellis.InteractionEvent{
		Type:     trellis.EventPointerDown,
		Node:     node,
		NodeID:   node.ID,
		NodeName: node.Name,
		GlobalX:  100,
		GlobalY:  200,
		Button:   trellis.MouseButtonLeft,
	})
	store.EmitEvent(trellis.InteractionEvent{Type: trellis.EventDrag, DeltaX: 3, DeltaY: -2})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != trellis.EventPointerDown || e0.NodeID != node.ID || e0.NodeName != "button" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Node != nil {
		t.Error("node pointer should be dropped")
	}
	if e0.GlobalX != 100 || e0.GlobalY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.GlobalX, e0.GlobalY)
	}
	if e1 := received[1]; e1.Type != trellis.EventDrag || e1.DeltaX != 3 || e1.DeltaY != -2 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_SceneClick(t *testing.T) {
	world := donburi.NewWorld()
	scene := trellis.NewScene()
	scene.SetSize(100, 100)
	scene.SetEntityStore(NewDonburiStore(world))

	btn := trellis.NewBox("btn", 20, 20)
	btn.SetPosition(trellis.Vec2{X: 10, Y: 10})
	btn.Interactable = true
	scene.Root().AddChild(btn)

	var clicks int
	InteractionEventType.Subscribe(world, func(w donburi.World, e trellis.InteractionEvent) {
		if e.Type == trellis.EventClick && e.NodeName == "btn" {
			clicks++
		}
	})

	scene.InjectClick(15, 15)
	scene.Update()
	scene.Update()
	events.ProcessAllEvents(world)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e trellis.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e trellis.InteractionEvent) {
		count2++
	})

	store.EmitEvent(trellis.InteractionEvent{Type: trellis.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
