package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
)

type ChatRepository interface {
	Save(ctx context.Context, msg *dbmysql.Message) error
	FindByID(ctx context.Context, messageID uint) (*dbmysql.Message, error)
	Update(ctx context.Context, msg *dbmysql.Message) error
	FetchHistory(ctx context.Context, conversationID string, limit, offset int) ([]*dbmysql.Message, error)
	AttachMedia(ctx context.Context, fileID string, messageID uint) error
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Save(ctx context.Context, msg *dbmysql.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (r *chatRepo) FindByID(ctx context.Context, messageID uint) (*dbmysql.Message, error) {
	var msg dbmysql.Message

	err := r.db.WithContext(ctx).First(&msg, "message_id = ?", messageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to load message: %w", err)
	}

	return &msg, nil
}

func (r *chatRepo) Update(ctx context.Context, msg *dbmysql.Message) error {
	if err := r.db.WithContext(ctx).Save(msg).Error; err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	return nil
}

// FetchHistory returns the conversation's messages newest first.
func (r *chatRepo) FetchHistory(ctx context.Context, conversationID string, limit, offset int) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message

	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	return messages, nil
}

// AttachMedia links an already-uploaded file to a message. The MediaRef row
// is created by the media server at upload time; sending the message claims
// it.
func (r *chatRepo) AttachMedia(ctx context.Context, fileID string, messageID uint) error {
	result := r.db.WithContext(ctx).
		Model(&dbmysql.MediaRef{}).
		Where("file_id = ? AND message_id IS NULL", fileID).
		Update("message_id", messageID)

	if result.Error != nil {
		return fmt.Errorf("failed to attach media ref: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("file %s: %w", fileID, common.ErrMediaNotFound)
	}
	return nil
}
