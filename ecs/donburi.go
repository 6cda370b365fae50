package ecs

import (
	"github.com/phanxgames/arcade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType carries arcade interaction events into the world.
var InteractionEventType = events.NewEventType[arcade.InteractionEvent]()

// NodeRef links an entity to the scene node it represents.
type NodeRef struct {
	Node *arcade.Node
	ID   uint32
}

// NodeComponent stores a NodeRef on every attached entity.
var NodeComponent = donburi.NewComponentType[NodeRef]()

var attachedQuery = donburi.NewQuery(filter.Contains(NodeComponent))

// Store is an arcade.EntityStore and arcade.System backed by a Donburi world.
type Store struct {
	world    donburi.World
	nextID   uint32
	entities map[uint32]donburi.Entity
}

// NewStore creates a store publishing into world.
func NewStore(world donburi.World) *Store {
	return &Store{world: world, entities: make(map[uint32]donburi.Entity)}
}

// World returns the underlying world.
func (s *Store) World() donburi.World {
	return s.world
}

// Attach creates an entity for n and stamps n.EntityID so that its
// interaction events are forwarded. Extra components are added to the entity.
func (s *Store) Attach(n *arcade.Node, components ...donburi.IComponentType) donburi.Entity {
	s.nextID++
	id := s.nextID
	e := s.world.Create(append([]donburi.IComponentType{NodeComponent}, components...)...)
	NodeComponent.SetValue(s.world.Entry(e), NodeRef{Node: n, ID: id})
	n.EntityID = id
	s.entities[id] = e
	return e
}

// Entity returns the entity linked to an EntityID.
func (s *Store) Entity(id uint32) (donburi.Entity, bool) {
	e, ok := s.entities[id]
	if !ok || !s.world.Valid(e) {
		return 0, false
	}
	return e, true
}

// Len returns the number of live attached entities.
func (s *Store) Len() int {
	return attachedQuery.Count(s.world)
}

// EmitEvent implements arcade.EntityStore.
func (s *Store) EmitEvent(event arcade.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Update implements arcade.System. It removes entities whose node was
// disposed, then delivers queued events to subscribers.
func (s *Store) Update(float64) {
	var dead []donburi.Entity
	attachedQuery.Each(s.world, func(entry *donburi.Entry) {
		ref := NodeComponent.Get(entry)
		if ref.Node == nil || ref.Node.IsDisposed() {
			dead = append(dead, entry.Entity())
			delete(s.entities, ref.ID)
		}
	})
	for _, e := range dead {
		s.world.Remove(e)
	}
	events.ProcessAllEvents(s.world)
}
