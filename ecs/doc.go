// Package ecs provides ECS adapters for birch's touch pipeline.
//
// The primary adapter is [NewDonburiStore], which forwards a record for every
// touch that hits a node with a non-zero EntityID into a [Donburi] world as a
// typed event. Subscribe to [TouchEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.SetTouchStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
