package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
)

type ConversationRepository interface {
	CreatePrivate(ctx context.Context, userA, userB string) (*dbmysql.Conversation, error)
	CreateGroup(ctx context.Context, name, creatorID string, memberIDs []string) (*dbmysql.Conversation, error)
	FindByID(ctx context.Context, conversationID string) (*dbmysql.Conversation, error)
	Participants(ctx context.Context, conversationID string) ([]string, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]*dbmysql.Conversation, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

// CreatePrivate returns the existing private conversation between the two
// users when one exists, so repeated requests stay idempotent.
func (r *conversationRepo) CreatePrivate(ctx context.Context, userA, userB string) (*dbmysql.Conversation, error) {
	var existing dbmysql.Conversation

	err := r.db.WithContext(ctx).
		Where("type = ? AND id IN (?)", dbmysql.ConversationTypePrivate,
			r.db.Model(&dbmysql.ConversationParticipant{}).
				Select("conversation_id").
				Where("user_id IN ?", []string{userA, userB}).
				Group("conversation_id").
				Having("COUNT(DISTINCT user_id) = 2")).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up private conversation: %w", err)
	}

	conv := &dbmysql.Conversation{
		ID:        uuid.New().String(),
		Type:      dbmysql.ConversationTypePrivate,
		CreatorID: userA,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		participants := []dbmysql.ConversationParticipant{
			{ConversationID: conv.ID, UserID: userA, JoinedAt: now},
			{ConversationID: conv.ID, UserID: userB, JoinedAt: now},
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create private conversation: %w", err)
	}

	return conv, nil
}

func (r *conversationRepo) CreateGroup(ctx context.Context, name, creatorID string, memberIDs []string) (*dbmysql.Conversation, error) {
	conv := &dbmysql.Conversation{
		ID:        uuid.New().String(),
		Type:      dbmysql.ConversationTypeGroup,
		Name:      name,
		CreatorID: creatorID,
	}

	now := time.Now().UTC()
	seen := map[string]bool{creatorID: true}
	participants := []dbmysql.ConversationParticipant{
		{ConversationID: conv.ID, UserID: creatorID, JoinedAt: now},
	}
	for _, userID := range memberIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		participants = append(participants, dbmysql.ConversationParticipant{
			ConversationID: conv.ID,
			UserID:         userID,
			JoinedAt:       now,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group conversation: %w", err)
	}

	return conv, nil
}

func (r *conversationRepo) FindByID(ctx context.Context, conversationID string) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation

	err := r.db.WithContext(ctx).First(&conv, "id = ?", conversationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	return &conv, nil
}

// Participants lists the member ids of a conversation. An unknown
// conversation surfaces as common.ErrConversationNotFound so fan-out can
// tell "empty" apart from "missing".
func (r *conversationRepo) Participants(ctx context.Context, conversationID string) ([]string, error) {
	if _, err := r.FindByID(ctx, conversationID); err != nil {
		return nil, err
	}

	var userIDs []string
	err := r.db.WithContext(ctx).
		Model(&dbmysql.ConversationParticipant{}).
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return userIDs, nil
}

func (r *conversationRepo) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&dbmysql.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check participation: %w", err)
	}

	return count > 0, nil
}

func (r *conversationRepo) ListForUser(ctx context.Context, userID string) ([]*dbmysql.Conversation, error) {
	var conversations []*dbmysql.Conversation

	err := r.db.WithContext(ctx).
		Where("id IN (?)",
			r.db.Model(&dbmysql.ConversationParticipant{}).
				Select("conversation_id").
				Where("user_id = ?", userID)).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	return conversations, nil
}
