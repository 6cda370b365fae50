package ecs

import (
	"testing"

	"github.com/phanxgames/arcade"

	"github.com/yohamta/donburi"
)

func TestStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewStore(world)

	var received []arcade.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e arcade.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(arcade.InteractionEvent{Type: arcade.EventPointerDown, EntityID: 42, GlobalX: 100, GlobalY: 200})
	store.EmitEvent(arcade.InteractionEvent{Type: arcade.EventClick, EntityID: 42})

	if len(received) != 0 {
		t.Fatalf("events delivered before Update: %d", len(received))
	}
	store.Update(1.0 / 60)

	if len(received) != 2 {
		t.Fatalf("received = %d, want 2", len(received))
	}
	if received[0].Type != arcade.EventPointerDown || received[0].GlobalX != 100 {
		t.Errorf("event 0 = %+v", received[0])
	}
	if received[1].Type != arcade.EventClick {
		t.Errorf("event 1 type = %v, want EventClick", received[1].Type)
	}
}

func TestStore_ImplementsInterfaces(t *testing.T) {
	store := NewStore(donburi.NewWorld())
	var _ arcade.EntityStore = store
	var _ arcade.System = store
}

func TestStore_AttachAndPrune(t *testing.T) {
	world := donburi.NewWorld()
	store := NewStore(world)

	a := arcade.NewRect("a", 10, 10, arcade.ColorWhite)
	b := arcade.NewRect("b", 10, 10, arcade.ColorWhite)
	store.Attach(a)
	store.Attach(b)

	if a.EntityID == 0 || a.EntityID == b.EntityID {
		t.Fatalf("entity ids = %d, %d", a.EntityID, b.EntityID)
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
	e, ok := store.Entity(a.EntityID)
	if !ok {
		t.Fatal("Entity(a) not found")
	}
	if got := NodeComponent.Get(world.Entry(e)).Node; got != a {
		t.Errorf("NodeRef.Node = %v, want a", got.Name)
	}

	a.Dispose()
	store.Update(0)

	if store.Len() != 1 {
		t.Errorf("Len after dispose = %d, want 1", store.Len())
	}
	if _, ok := store.Entity(a.EntityID); ok {
		t.Error("disposed node still has an entity")
	}
}

func TestStore_SceneClickReachesWorld(t *testing.T) {
	scene := arcade.NewScene(200, 200)
	store := NewStore(donburi.NewWorld())
	scene.SetEntityStore(store)
	scene.AddSystem(store)

	btn := arcade.NewRect("btn", 40, 40, arcade.ColorWhite)
	btn.SetPosition(100, 100)
	btn.Interactable = true
	scene.Add(btn)
	store.Attach(btn)

	clicks := 0
	InteractionEventType.Subscribe(store.World(), func(w donburi.World, e arcade.InteractionEvent) {
		if e.Type == arcade.EventClick && e.EntityID == btn.EntityID {
			clicks++
		}
	})

	scene.InjectClick(100, 100)
	for range 4 {
		if err := scene.Step(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}
