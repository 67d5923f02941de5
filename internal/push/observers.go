package push

import (
	"log"

	"chatapp/internal/common"
)

// WebSocketObserver forwards events to the target user's live connections.
type WebSocketObserver struct {
	pusher common.Pusher
}

func NewWebSocketObserver(pusher common.Pusher) *WebSocketObserver {
	return &WebSocketObserver{pusher: pusher}
}

func (o *WebSocketObserver) Name() string {
	return "websocket_observer"
}

func (o *WebSocketObserver) Update(event common.PushEvent) error {
	delivered, err := o.pusher.Push(event.UserID, event)
	if err != nil {
		return err
	}
	if !delivered {
		// Not an error: the user went offline between the presence check
		// and the push. The durable delivery row covers them.
		log.Printf("user %s not connected, %s event queued for pull", event.UserID, event.Type)
	}
	return nil
}
