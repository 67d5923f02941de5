package common

import (
	"context"
)

// PresenceOracle answers whether a user has a reachable live connection
// right now. Implementations must be cheap to call; fan-out consults it once
// per recipient.
type PresenceOracle interface {
	IsReachable(ctx context.Context, userID string) bool
}

// PresenceRegistry is the write side of presence, fed by the transport layer
// when connections open and close.
type PresenceRegistry interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
	Refresh(ctx context.Context, userID string) error
}

// Pusher delivers an event to one user's live connection. A false return
// means the user had no connection; errors are transport failures. Either
// way the caller treats the push as fire-and-forget.
type Pusher interface {
	Push(userID string, event PushEvent) (bool, error)
}

// Observer receives push events from the async push manager.
type Observer interface {
	Update(event PushEvent) error
	Name() string
}

// Subject is the registration side of the push manager.
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(event PushEvent)
	NotifyAsync(event PushEvent)
}
