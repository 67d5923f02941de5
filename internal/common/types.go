package common

import (
	"time"
)

// FanoutResult partitions a message's recipients by reachability at send
// time. The two slices are disjoint and together cover every recipient.
type FanoutResult struct {
	MessageID     uint     `json:"message_id"`
	LiveTargets   []string `json:"live_targets"`
	QueuedTargets []string `json:"queued_targets"`
}

// Recipients returns how many users the message was fanned out to.
func (r FanoutResult) Recipients() int {
	return len(r.LiveTargets) + len(r.QueuedTargets)
}

// DeliverySummary is the aggregate view over one message's delivery rows.
// DeliveredCount counts records at DELIVERED or later, so a record that
// skipped straight to READ still counts as delivered.
type DeliverySummary struct {
	MessageID        uint     `json:"message_id"`
	Total            int      `json:"total"`
	ReadCount        int      `json:"read_count"`
	DeliveredCount   int      `json:"delivered_count"`
	UnreadRecipients []string `json:"unread_recipients"`
}

type PushEventType string

const (
	PushEventMessage     PushEventType = "message"
	PushEventReadReceipt PushEventType = "read_receipt"
	PushEventStatus      PushEventType = "status_update"
)

// PushEvent is what the push pipeline delivers to a connected user.
type PushEvent struct {
	Type           PushEventType  `json:"type"`
	UserID         string         `json:"user_id"`
	ConversationID string         `json:"conversation_id,omitempty"`
	MessageID      uint           `json:"message_id,omitempty"`
	SenderID       string         `json:"sender_id,omitempty"`
	Content        string         `json:"content,omitempty"`
	Status         DeliveryState  `json:"status,omitempty"`
	Payload        map[string]any `json:"payload,omitempty"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

// DeliveryStatusView is the read-side projection of one tracking row.
type DeliveryStatusView struct {
	MessageID       uint          `json:"message_id"`
	RecipientID     string        `json:"recipient_id"`
	Status          DeliveryState `json:"status"`
	StatusTimestamp time.Time     `json:"status_timestamp"`
}

// UnreadConversationCount pairs a conversation with the caller's number of
// not-yet-read messages in it.
type UnreadConversationCount struct {
	ConversationID string `json:"conversation_id"`
	UnreadCount    int64  `json:"unread_count"`
}
