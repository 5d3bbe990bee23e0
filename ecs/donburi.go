package ecs

import (
	"github.com/phanxgames/sway"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Transition is the ECS form of a sway.TransitionEvent. Elements are
// referenced by node ID so systems never hold scene-graph pointers.
type Transition struct {
	Kind   sway.RelationKind
	OldIDs []uint32
	NewIDs []uint32
	FadeIn bool
}

// TransitionEventType is the Donburi event type for sway transition events.
var TransitionEventType = events.NewEventType[Transition]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Transitions
// are published to TransitionEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) sway.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) OnTransition(ev sway.TransitionEvent) {
	TransitionEventType.Publish(s.world, Transition{
		Kind:   ev.Kind,
		OldIDs: nodeIDs(ev.Old),
		NewIDs: nodeIDs(ev.New),
		FadeIn: ev.FadeIn,
	})
}

func nodeIDs(nodes []*sway.Node) []uint32 {
	if len(nodes) == 0 {
		return nil
	}
	ids := make([]uint32, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
