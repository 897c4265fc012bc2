package comment

import (
	"fmt"

	"github.com/nkamau/elimu/core"
)

// Broadcaster fans out a comment event to a course's current subscribers.
type Broadcaster interface {
	Broadcast(courseID string, event Event)
}

type registryBroadcaster struct {
	registry *Registry
	logger   core.Logger
}

var _ Broadcaster = (*registryBroadcaster)(nil)

func NewBroadcaster(registry *Registry, logger core.Logger) Broadcaster {
	return &registryBroadcaster{
		registry: registry,
		logger:   logger,
	}
}

// Broadcast delivers the event to every subscriber currently registered for
// the course. A failed delivery is dropped for that subscriber only: it does
// not abort the remaining deliveries and it does not unsubscribe anyone;
// removal is solely driven by the subscriber's own disconnect.
func (b *registryBroadcaster) Broadcast(courseID string, event Event) {
	for _, sub := range b.registry.Subscribers(courseID) {
		if err := sub.Send(event); err != nil {
			b.logger.Debug(fmt.Sprintf("dropping %s event for a course %q subscriber: %v", event.Kind, courseID, err))
		}
	}
}
