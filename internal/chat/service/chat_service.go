package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chatapp/internal/chat/repository"
	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
	"chatapp/internal/delivery"
)

// ChatService defines the interface exposed to the handler layer.
type ChatService interface {
	CreatePrivateConversation(ctx context.Context, callerID, otherUserID string) (*dbmysql.Conversation, error)
	CreateGroupConversation(ctx context.Context, callerID, name string, memberIDs []string) (*dbmysql.Conversation, error)
	ListConversations(ctx context.Context, callerID string) ([]*dbmysql.Conversation, error)
	ListParticipants(ctx context.Context, callerID, conversationID string) ([]string, error)

	SendMessage(ctx context.Context, msg *dbmysql.Message, mediaFileIDs []string) (*dbmysql.Message, *common.FanoutResult, error)
	EditMessage(ctx context.Context, callerID string, messageID uint, newContent string) (*dbmysql.Message, error)
	GetMessageHistory(ctx context.Context, callerID, conversationID string, limit, offset int) ([]*dbmysql.Message, error)

	MarkReceived(ctx context.Context, messageID uint, callerID string) (common.DeliveryStatusView, error)
	MarkDelivered(ctx context.Context, messageID uint, callerID string) (common.DeliveryStatusView, error)
	MarkRead(ctx context.Context, messageID uint, callerID string) (common.DeliveryStatusView, error)
	ChangeStatus(ctx context.Context, messageID uint, callerID string, target common.DeliveryState) (common.DeliveryStatusView, error)

	ListStatuses(ctx context.Context, messageID uint, callerID string) ([]common.DeliveryStatusView, error)
	DeliverySummary(ctx context.Context, messageID uint, callerID string) (common.DeliverySummary, error)
}

type chatService struct {
	repo          repository.ChatRepository
	conversations repository.ConversationRepository
	tracker       *delivery.Tracker
	fanout        *delivery.Fanout
	queries       *delivery.QueryService
	pushes        common.Subject
}

// Constructor used in DI/wire.
func NewChatService(
	repo repository.ChatRepository,
	conversations repository.ConversationRepository,
	tracker *delivery.Tracker,
	fanout *delivery.Fanout,
	queries *delivery.QueryService,
	pushes common.Subject,
) ChatService {
	return &chatService{
		repo:          repo,
		conversations: conversations,
		tracker:       tracker,
		fanout:        fanout,
		queries:       queries,
		pushes:        pushes,
	}
}

func (s *chatService) CreatePrivateConversation(ctx context.Context, callerID, otherUserID string) (*dbmysql.Conversation, error) {
	if otherUserID == "" {
		return nil, errors.New("other user ID cannot be empty")
	}
	if otherUserID == callerID {
		return nil, errors.New("cannot open a private conversation with yourself")
	}
	return s.conversations.CreatePrivate(ctx, callerID, otherUserID)
}

func (s *chatService) CreateGroupConversation(ctx context.Context, callerID, name string, memberIDs []string) (*dbmysql.Conversation, error) {
	if name == "" {
		return nil, errors.New("group name cannot be empty")
	}
	if len(memberIDs) == 0 {
		return nil, errors.New("group needs at least one member besides the creator")
	}
	return s.conversations.CreateGroup(ctx, name, callerID, memberIDs)
}

func (s *chatService) ListConversations(ctx context.Context, callerID string) ([]*dbmysql.Conversation, error) {
	return s.conversations.ListForUser(ctx, callerID)
}

// ListParticipants returns the conversation's member ids; participants only.
func (s *chatService) ListParticipants(ctx context.Context, callerID, conversationID string) ([]string, error) {
	member, err := s.conversations.IsParticipant(ctx, conversationID, callerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, common.ErrNotParticipant
	}
	return s.conversations.Participants(ctx, conversationID)
}

// SendMessage validates and persists the message, claims any uploaded media
// for it, then fans it out to every other participant. The message is
// durable before any push goes out.
func (s *chatService) SendMessage(ctx context.Context, msg *dbmysql.Message, mediaFileIDs []string) (*dbmysql.Message, *common.FanoutResult, error) {
	if msg.ConversationID == "" {
		return nil, nil, errors.New("conversation ID cannot be empty")
	}
	if msg.SenderID == "" {
		return nil, nil, errors.New("sender ID cannot be empty")
	}
	if err := common.ValidateMessageContent(msg.Content, len(mediaFileIDs)); err != nil {
		return nil, nil, err
	}

	member, err := s.conversations.IsParticipant(ctx, msg.ConversationID, msg.SenderID)
	if err != nil {
		return nil, nil, err
	}
	if !member {
		return nil, nil, common.ErrNotParticipant
	}

	msg.SentAt = time.Now().UTC()

	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, nil, err
	}

	for _, fileID := range mediaFileIDs {
		if err := s.repo.AttachMedia(ctx, fileID, msg.MessageID); err != nil {
			return nil, nil, err
		}
	}

	result, err := s.fanout.Dispatch(ctx, msg)
	if err != nil {
		return nil, nil, fmt.Errorf("message %d saved but fan-out failed: %w", msg.MessageID, err)
	}

	return msg, result, nil
}

// EditMessage replaces the message body. Only the sender may edit; delivery
// rows keep their states.
func (s *chatService) EditMessage(ctx context.Context, callerID string, messageID uint, newContent string) (*dbmysql.Message, error) {
	if err := common.ValidateMessageContent(newContent, 0); err != nil {
		return nil, err
	}

	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != callerID {
		return nil, common.ErrNotParticipant
	}

	msg.EditContent(newContent, time.Now().UTC())
	if err := s.repo.Update(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// GetMessageHistory returns the conversation's messages for a participant.
func (s *chatService) GetMessageHistory(ctx context.Context, callerID, conversationID string, limit, offset int) ([]*dbmysql.Message, error) {
	if conversationID == "" {
		return nil, errors.New("conversation ID is required")
	}

	member, err := s.conversations.IsParticipant(ctx, conversationID, callerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, common.ErrNotParticipant
	}

	return s.repo.FetchHistory(ctx, conversationID, limit, offset)
}

func (s *chatService) MarkReceived(ctx context.Context, messageID uint, callerID string) (common.DeliveryStatusView, error) {
	row, err := s.tracker.MarkReceived(ctx, messageID, callerID)
	if err != nil {
		return common.DeliveryStatusView{}, err
	}
	return row.View(), nil
}

func (s *chatService) MarkDelivered(ctx context.Context, messageID uint, callerID string) (common.DeliveryStatusView, error) {
	row, err := s.tracker.MarkDelivered(ctx, messageID, callerID)
	if err != nil {
		return common.DeliveryStatusView{}, err
	}
	return row.View(), nil
}

// MarkRead advances the caller's row and pushes a read receipt to the
// sender. Receipts ride the same async pipeline as messages; retried acks
// may re-emit one, clients treat them as idempotent.
func (s *chatService) MarkRead(ctx context.Context, messageID uint, callerID string) (common.DeliveryStatusView, error) {
	row, err := s.tracker.MarkRead(ctx, messageID, callerID)
	if err != nil {
		return common.DeliveryStatusView{}, err
	}

	s.emitReadReceipt(ctx, messageID, callerID)
	return row.View(), nil
}

// ChangeStatus moves the caller's row to an explicit target state.
func (s *chatService) ChangeStatus(ctx context.Context, messageID uint, callerID string, target common.DeliveryState) (common.DeliveryStatusView, error) {
	row, err := s.tracker.ChangeStatus(ctx, messageID, callerID, target)
	if err != nil {
		return common.DeliveryStatusView{}, err
	}

	if row.Status == common.DeliveryStateRead {
		s.emitReadReceipt(ctx, messageID, callerID)
	}
	return row.View(), nil
}

// ListStatuses exposes every recipient's delivery row for a message, gated
// on the caller belonging to the message's conversation.
func (s *chatService) ListStatuses(ctx context.Context, messageID uint, callerID string) ([]common.DeliveryStatusView, error) {
	if err := s.requireMessageParticipant(ctx, messageID, callerID); err != nil {
		return nil, err
	}
	return s.queries.MessageStatuses(ctx, messageID)
}

// DeliverySummary aggregates a message's delivery rows for a participant.
func (s *chatService) DeliverySummary(ctx context.Context, messageID uint, callerID string) (common.DeliverySummary, error) {
	if err := s.requireMessageParticipant(ctx, messageID, callerID); err != nil {
		return common.DeliverySummary{}, err
	}
	return s.tracker.Summarize(ctx, messageID)
}

// requireMessageParticipant resolves the message's conversation and rejects
// callers outside it. Delivery metadata never leaks across conversations.
func (s *chatService) requireMessageParticipant(ctx context.Context, messageID uint, callerID string) error {
	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}

	member, err := s.conversations.IsParticipant(ctx, msg.ConversationID, callerID)
	if err != nil {
		return err
	}
	if !member {
		return common.ErrNotParticipant
	}
	return nil
}

func (s *chatService) emitReadReceipt(ctx context.Context, messageID uint, readerID string) {
	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		log.Printf("read receipt for message %d skipped: %v", messageID, err)
		return
	}

	s.pushes.NotifyAsync(common.PushEvent{
		Type:           common.PushEventReadReceipt,
		UserID:         msg.SenderID,
		ConversationID: msg.ConversationID,
		MessageID:      messageID,
		SenderID:       readerID,
		Status:         common.DeliveryStateRead,
		OccurredAt:     time.Now().UTC(),
	})
}
