package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
)

// DeliveryRepository owns the message_delivery_status table. Creation is a
// single transactional batch; transitions are single guarded UPDATEs so the
// monotonic rule holds under concurrent acknowledgements for the same
// (message, recipient) pair.
type DeliveryRepository interface {
	CreateBatch(ctx context.Context, rows []*dbmysql.MessageDeliveryStatus) error
	Find(ctx context.Context, messageID uint, recipientID string) (*dbmysql.MessageDeliveryStatus, error)
	Advance(ctx context.Context, messageID uint, recipientID string, target common.DeliveryState, at time.Time) (bool, error)
	ListByMessage(ctx context.Context, messageID uint) ([]*dbmysql.MessageDeliveryStatus, error)
	UnreadForRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*dbmysql.MessageDeliveryStatus, error)
	CountUnreadPerConversation(ctx context.Context, recipientID string) ([]common.UnreadConversationCount, error)
	DeleteForMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type deliveryRepo struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) CreateBatch(ctx context.Context, rows []*dbmysql.MessageDeliveryStatus) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(rows).Error; err != nil {
		return fmt.Errorf("failed to create delivery rows: %w", err)
	}
	return nil
}

func (r *deliveryRepo) Find(ctx context.Context, messageID uint, recipientID string) (*dbmysql.MessageDeliveryStatus, error) {
	var row dbmysql.MessageDeliveryStatus

	err := r.db.WithContext(ctx).
		Where("message_id = ? AND recipient_id = ?", messageID, recipientID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load delivery row: %w", err)
	}

	return &row, nil
}

// Advance executes the compare-and-advance in one statement: the row only
// changes when its current status ranks strictly below the target. Returns
// whether a row actually moved; zero rows affected means the record is
// absent or already at/past the target - the caller disambiguates with Find.
func (r *deliveryRepo) Advance(ctx context.Context, messageID uint, recipientID string, target common.DeliveryState, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&dbmysql.MessageDeliveryStatus{}).
		Where("message_id = ? AND recipient_id = ? AND status IN ?",
			messageID, recipientID, statesBelow(target)).
		Updates(map[string]interface{}{
			"status":           target,
			"status_timestamp": at,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to advance delivery status: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *deliveryRepo) ListByMessage(ctx context.Context, messageID uint) ([]*dbmysql.MessageDeliveryStatus, error) {
	var rows []*dbmysql.MessageDeliveryStatus

	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("recipient_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery rows: %w", err)
	}

	return rows, nil
}

func (r *deliveryRepo) UnreadForRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*dbmysql.MessageDeliveryStatus, error) {
	var rows []*dbmysql.MessageDeliveryStatus

	query := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status <> ?", recipientID, common.DeliveryStateRead).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list unread rows: %w", err)
	}

	return rows, nil
}

func (r *deliveryRepo) CountUnreadPerConversation(ctx context.Context, recipientID string) ([]common.UnreadConversationCount, error) {
	var counts []common.UnreadConversationCount

	err := r.db.WithContext(ctx).
		Model(&dbmysql.MessageDeliveryStatus{}).
		Select("messages.conversation_id AS conversation_id, COUNT(*) AS unread_count").
		Joins("JOIN messages ON messages.message_id = message_delivery_status.message_id").
		Where("message_delivery_status.recipient_id = ? AND message_delivery_status.status <> ?",
			recipientID, common.DeliveryStateRead).
		Group("messages.conversation_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count unread per conversation: %w", err)
	}

	return counts, nil
}

// DeleteForMessagesBefore removes tracking rows for messages older than the
// cutoff. Retention policy lives with the caller; this is only the hook.
func (r *deliveryRepo) DeleteForMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("message_id IN (?)",
			r.db.Model(&dbmysql.Message{}).Select("message_id").Where("created_at < ?", cutoff)).
		Delete(&dbmysql.MessageDeliveryStatus{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old delivery rows: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// statesBelow lists every state ranking strictly below target; the IN
// clause is what makes Advance a no-op for late or duplicate acks.
func statesBelow(target common.DeliveryState) []common.DeliveryState {
	all := []common.DeliveryState{
		common.DeliveryStateSent,
		common.DeliveryStateReceived,
		common.DeliveryStateDelivered,
		common.DeliveryStateRead,
	}

	below := make([]common.DeliveryState, 0, len(all))
	for _, s := range all {
		if s.Before(target) {
			below = append(below, s)
		}
	}
	return below
}
