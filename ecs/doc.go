// Package ecs bridges arcade scenes into a [Donburi] world.
//
// [Store] links nodes to entities and republishes pointer, click, and drag
// events as [InteractionEventType] events. Register it both as the scene's
// entity store and as a scene system so queued events are delivered every
// step:
//
//	store := ecs.NewStore(donburi.NewWorld())
//	scene.SetEntityStore(store)
//	scene.AddSystem(store)
//	store.Attach(node)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
