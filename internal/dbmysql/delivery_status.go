package dbmysql

import (
	"time"

	"chatapp/internal/common"
)

// MessageDeliveryStatus is one recipient's tracking row for one message.
// The (message_id, recipient_id) pair is unique; exactly one row exists per
// non-sender participant, created when the message is persisted.
type MessageDeliveryStatus struct {
	ID              uint                 `gorm:"primaryKey" json:"id"`
	MessageID       uint                 `gorm:"not null;uniqueIndex:uk_message_recipient;index:idx_mds_message_status" json:"message_id"`
	RecipientID     string               `gorm:"size:36;not null;uniqueIndex:uk_message_recipient;index:idx_mds_recipient_status" json:"recipient_id"`
	Status          common.DeliveryState `gorm:"size:20;not null;index:idx_mds_message_status;index:idx_mds_recipient_status" json:"status"`
	StatusTimestamp time.Time            `gorm:"not null" json:"status_timestamp"`
	CreatedAt       time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MessageDeliveryStatus) TableName() string {
	return "message_delivery_status"
}

// Advance moves the row forward to target if target outranks the current
// state, stamping the transition time. Lower or equal targets leave the row
// untouched and report false. This is the in-memory mirror of the guarded
// UPDATE the repository issues; both enforce the same monotonic rule.
func (s *MessageDeliveryStatus) Advance(target common.DeliveryState, at time.Time) bool {
	if s.Status.Rank() >= target.Rank() {
		return false
	}
	s.Status = target
	s.StatusTimestamp = at
	return true
}

// View projects the row into its read-side shape.
func (s *MessageDeliveryStatus) View() common.DeliveryStatusView {
	return common.DeliveryStatusView{
		MessageID:       s.MessageID,
		RecipientID:     s.RecipientID,
		Status:          s.Status,
		StatusTimestamp: s.StatusTimestamp,
	}
}
