// Package live keeps in-progress matches fresh: a poller refreshes the live snapshot and a
// websocket hub pushes each refresh to connected clients.
package live

import (
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/store"
)

// MessageType names the kind of payload pushed to clients.
type MessageType string

const (
	// MessageSnapshot is sent once on connect with the latest known snapshot.
	MessageSnapshot MessageType = "snapshot"
	// MessageUpdate is sent after every successful poll.
	MessageUpdate MessageType = "update"
)

// Message is the envelope written to websocket clients.
type Message struct {
	Type      MessageType `json:"type"`
	Payload   Payload     `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Payload mirrors the /api/live body with the snapshot time.
type Payload struct {
	Live      []matches.Match `json:"live"`
	Count     int             `json:"count"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewMessage wraps a snapshot for the wire.
func NewMessage(kind MessageType, snap store.LiveSnapshot, at time.Time) Message {
	live := snap.Matches
	if live == nil {
		live = []matches.Match{}
	}
	return Message{
		Type: kind,
		Payload: Payload{
			Live:      live,
			Count:     len(live),
			UpdatedAt: snap.UpdatedAt,
		},
		Timestamp: at,
	}
}
