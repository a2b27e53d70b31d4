package shardring

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/justloop/shardring/ring"
)

// logTagListener is the logging tag for RingEventHandler
var logTagListener = "shardring.membership"

// EventType is the potential event type for member event
type EventType int

// All the message types related to member events
const (
	EventMemberJoin EventType = iota
	EventMemberLeave
	EventMemberFailed
	EventMemberReap
)

// MemberEvent is a membership change reported by the caller's discovery or
// orchestration layer. The ring itself carries no transport, feeding events
// in is the caller's synchronization point.
type MemberEvent struct {
	// Type is one of the EventType
	Type EventType
	// Servers is the list of servers related to this event
	Servers []string
}

// HandlerFunc defines a function to handle the member events
type HandlerFunc func(event MemberEvent) error

// RingEventHandler is an event listener that is responsible to update a hash
// ring from member events
type RingEventHandler struct {
	ring ring.HashRing
}

// NewRingEventHandler create a new RingEventHandler from a ring instance
func NewRingEventHandler(r ring.HashRing) *RingEventHandler {
	return &RingEventHandler{
		ring: r,
	}
}

// Handler is the handler of member events. Duplicate joins and removals of
// unknown servers are treated as no-ops, discovery layers redeliver.
func (handler *RingEventHandler) Handler(event MemberEvent) error {
	log.Infof("%s: ring received member event: %v", logTagListener, event)
	for _, server := range event.Servers {
		var err error
		switch event.Type {
		case EventMemberJoin:
			err = handler.ring.AddNode(server)
			if errors.Is(err, ring.ErrNodeExists) {
				log.Debugf("%s: duplicate join for %s ignored", logTagListener, server)
				err = nil
			}
		case EventMemberLeave, EventMemberFailed, EventMemberReap:
			err = handler.ring.RemoveNode(server)
			if errors.Is(err, ring.ErrNodeNotFound) {
				log.Debugf("%s: removal of unknown server %s ignored", logTagListener, server)
				err = nil
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
