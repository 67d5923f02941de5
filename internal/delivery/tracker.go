// Package delivery implements per-recipient delivery-state tracking and
// fan-out for conversation messages.
package delivery

import (
	"context"
	"fmt"
	"time"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
	"chatapp/internal/delivery/repository"
)

// Tracker owns the delivery rows of a message: it creates them at fan-out
// time and moves them forward through the lifecycle. The three Mark
// operations are the ordered, ack-driven API: they only ever advance and
// silently ignore late or duplicate acknowledgements. ChangeStatus is the
// arbitrary-target entry point used by the status endpoint; it is the one
// place a regression attempt can show up, and it fails loudly there.
type Tracker struct {
	repo repository.DeliveryRepository
}

func NewTracker(repo repository.DeliveryRepository) *Tracker {
	return &Tracker{repo: repo}
}

// Initialize creates one SENT row per recipient in a single batch. The
// recipient set must not contain the sender; that is a caller bug and gets
// ErrDuplicateRecipient. Duplicate recipient ids collapse to one row.
func (t *Tracker) Initialize(ctx context.Context, messageID uint, recipientIDs []string, senderID string) ([]*dbmysql.MessageDeliveryStatus, error) {
	if senderID == "" {
		return nil, fmt.Errorf("sender ID cannot be empty")
	}

	now := time.Now().UTC()
	seen := make(map[string]bool, len(recipientIDs))
	rows := make([]*dbmysql.MessageDeliveryStatus, 0, len(recipientIDs))

	for _, recipientID := range recipientIDs {
		if recipientID == senderID {
			return nil, fmt.Errorf("recipient %s: %w", recipientID, common.ErrDuplicateRecipient)
		}
		if seen[recipientID] {
			continue
		}
		seen[recipientID] = true

		rows = append(rows, &dbmysql.MessageDeliveryStatus{
			MessageID:       messageID,
			RecipientID:     recipientID,
			Status:          common.DeliveryStateSent,
			StatusTimestamp: now,
		})
	}

	if err := t.repo.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// MarkReceived records the recipient's client acknowledging receipt.
func (t *Tracker) MarkReceived(ctx context.Context, messageID uint, recipientID string) (*dbmysql.MessageDeliveryStatus, error) {
	return t.advance(ctx, messageID, recipientID, common.DeliveryStateReceived)
}

// MarkDelivered records delivery to the recipient's device.
func (t *Tracker) MarkDelivered(ctx context.Context, messageID uint, recipientID string) (*dbmysql.MessageDeliveryStatus, error) {
	return t.advance(ctx, messageID, recipientID, common.DeliveryStateDelivered)
}

// MarkRead records the recipient reading the message. READ is terminal;
// marking an already-read message succeeds silently.
func (t *Tracker) MarkRead(ctx context.Context, messageID uint, recipientID string) (*dbmysql.MessageDeliveryStatus, error) {
	return t.advance(ctx, messageID, recipientID, common.DeliveryStateRead)
}

// advance applies the monotonic rule: the guarded UPDATE only moves rows
// ranking strictly below target, so intermediate states may be skipped and
// out-of-order acks land as no-ops. When nothing moved, a follow-up read
// distinguishes "row already past target" (fine) from "row never existed"
// (ErrRecordNotFound).
func (t *Tracker) advance(ctx context.Context, messageID uint, recipientID string, target common.DeliveryState) (*dbmysql.MessageDeliveryStatus, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("recipient ID cannot be empty")
	}

	if _, err := t.repo.Advance(ctx, messageID, recipientID, target, time.Now().UTC()); err != nil {
		return nil, err
	}

	// Find also covers the zero-rows-affected case: a missing row surfaces
	// here as ErrRecordNotFound, an already-past row comes back unchanged.
	return t.repo.Find(ctx, messageID, recipientID)
}

// ChangeStatus moves the record to an explicitly requested state. Unknown
// states and states ranking below the record's current one are rejected
// with ErrInvalidTransition; requesting the current state again is a no-op
// so retried requests stay idempotent.
func (t *Tracker) ChangeStatus(ctx context.Context, messageID uint, recipientID string, target common.DeliveryState) (*dbmysql.MessageDeliveryStatus, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("unknown state %q: %w", target, common.ErrInvalidTransition)
	}

	row, err := t.repo.Find(ctx, messageID, recipientID)
	if err != nil {
		return nil, err
	}

	if target.Before(row.Status) {
		return nil, fmt.Errorf("cannot move from %s to %s: %w",
			row.Status, target, common.ErrInvalidTransition)
	}
	if target == row.Status {
		return row, nil
	}

	if _, err := t.repo.Advance(ctx, messageID, recipientID, target, time.Now().UTC()); err != nil {
		return nil, err
	}

	// Re-read rather than patching the in-memory copy: a concurrent ack
	// may have advanced the row past the requested target.
	return t.repo.Find(ctx, messageID, recipientID)
}

// Summarize aggregates the message's delivery rows. ReadCount plus the
// unread set always covers the full recipient total; DeliveredCount counts
// rows at DELIVERED or later.
func (t *Tracker) Summarize(ctx context.Context, messageID uint) (common.DeliverySummary, error) {
	rows, err := t.repo.ListByMessage(ctx, messageID)
	if err != nil {
		return common.DeliverySummary{}, err
	}

	summary := common.DeliverySummary{
		MessageID:        messageID,
		Total:            len(rows),
		UnreadRecipients: make([]string, 0, len(rows)),
	}

	for _, row := range rows {
		if row.Status == common.DeliveryStateRead {
			summary.ReadCount++
		} else {
			summary.UnreadRecipients = append(summary.UnreadRecipients, row.RecipientID)
		}
		if row.Status.Rank() >= common.DeliveryStateDelivered.Rank() {
			summary.DeliveredCount++
		}
	}

	return summary, nil
}
