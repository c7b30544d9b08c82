// Package ecs provides ECS adapters for birch.
package ecs

import (
	"github.com/phanxgames/birch"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TouchEventType is the Donburi event type for birch touch records.
// Subscribe to this in your ECS systems to receive touches on entity-backed
// nodes.
var TouchEventType = events.NewEventType[birch.TouchRecord]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates a TouchStore backed by a Donburi world. Touch
// records are published to TouchEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) birch.TouchStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitTouch(rec birch.TouchRecord) {
	TouchEventType.Publish(s.world, rec)
}
