package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	chatmocks "chatapp/internal/chat/mocks"
	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
	"chatapp/internal/delivery"
	deliverymocks "chatapp/internal/delivery/mocks"
)

type serviceFixture struct {
	svc           ChatService
	repo          *chatmocks.MockChatRepository
	conversations *chatmocks.MockConversationRepository
	deliveryRepo  *deliverymocks.MockDeliveryRepository
	oracle        *deliverymocks.MockPresenceOracle
	pushes        *deliverymocks.MockSubject
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &serviceFixture{
		repo:          chatmocks.NewMockChatRepository(ctrl),
		conversations: chatmocks.NewMockConversationRepository(ctrl),
		deliveryRepo:  deliverymocks.NewMockDeliveryRepository(ctrl),
		oracle:        deliverymocks.NewMockPresenceOracle(ctrl),
		pushes:        deliverymocks.NewMockSubject(ctrl),
	}

	tracker := delivery.NewTracker(f.deliveryRepo)
	fanout := delivery.NewFanout(tracker, f.conversations, f.oracle, f.pushes)
	queries := delivery.NewQueryService(f.deliveryRepo)
	f.svc = NewChatService(f.repo, f.conversations, tracker, fanout, queries, f.pushes)
	return f
}

func TestChatService_SendMessage(t *testing.T) {
	f := newServiceFixture(t)

	msg := &dbmysql.Message{
		ConversationID: "conv-1",
		SenderID:       "user-a",
		Content:        "hello there",
	}

	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "user-a").
		Return(true, nil)
	f.repo.EXPECT().
		Save(gomock.Any(), msg).
		DoAndReturn(func(_ context.Context, m *dbmysql.Message) error {
			m.MessageID = 42
			return nil
		})
	f.conversations.EXPECT().
		Participants(gomock.Any(), "conv-1").
		Return([]string{"user-a", "user-b"}, nil)
	f.deliveryRepo.EXPECT().
		CreateBatch(gomock.Any(), gomock.Len(1)).
		Return(nil)
	f.oracle.EXPECT().IsReachable(gomock.Any(), "user-b").Return(true)
	f.pushes.EXPECT().NotifyAsync(gomock.Any())

	saved, result, err := f.svc.SendMessage(context.Background(), msg, nil)
	require.NoError(t, err)

	assert.Equal(t, uint(42), saved.MessageID)
	assert.False(t, saved.SentAt.IsZero())
	assert.Equal(t, []string{"user-b"}, result.LiveTargets)
	assert.Empty(t, result.QueuedTargets)
}

func TestChatService_SendMessage_AttachesMedia(t *testing.T) {
	f := newServiceFixture(t)

	msg := &dbmysql.Message{
		ConversationID: "conv-1",
		SenderID:       "user-a",
	}

	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "user-a").
		Return(true, nil)
	f.repo.EXPECT().
		Save(gomock.Any(), msg).
		DoAndReturn(func(_ context.Context, m *dbmysql.Message) error {
			m.MessageID = 43
			return nil
		})
	f.repo.EXPECT().
		AttachMedia(gomock.Any(), "64f0c1d2e3a4b5c6d7e8f901", uint(43)).
		Return(nil)
	f.conversations.EXPECT().
		Participants(gomock.Any(), "conv-1").
		Return([]string{"user-a", "user-b"}, nil)
	f.deliveryRepo.EXPECT().
		CreateBatch(gomock.Any(), gomock.Len(1)).
		Return(nil)
	f.oracle.EXPECT().IsReachable(gomock.Any(), "user-b").Return(false)

	// Empty body is fine when media rides along.
	_, result, err := f.svc.SendMessage(context.Background(), msg,
		[]string{"64f0c1d2e3a4b5c6d7e8f901"})
	require.NoError(t, err)
	assert.Equal(t, []string{"user-b"}, result.QueuedTargets)
}

func TestChatService_SendMessage_Validation(t *testing.T) {
	tests := []struct {
		name string
		msg  *dbmysql.Message
	}{
		{
			name: "empty conversation",
			msg:  &dbmysql.Message{SenderID: "user-a", Content: "hi"},
		},
		{
			name: "empty sender",
			msg:  &dbmysql.Message{ConversationID: "conv-1", Content: "hi"},
		},
		{
			name: "empty content",
			msg:  &dbmysql.Message{ConversationID: "conv-1", SenderID: "user-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			_, _, err := f.svc.SendMessage(context.Background(), tt.msg, nil)
			assert.Error(t, err)
		})
	}
}

func TestChatService_SendMessage_NotParticipant(t *testing.T) {
	f := newServiceFixture(t)

	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "intruder").
		Return(false, nil)

	_, _, err := f.svc.SendMessage(context.Background(), &dbmysql.Message{
		ConversationID: "conv-1",
		SenderID:       "intruder",
		Content:        "hi",
	}, nil)
	assert.ErrorIs(t, err, common.ErrNotParticipant)
}

func TestChatService_EditMessage(t *testing.T) {
	f := newServiceFixture(t)

	f.repo.EXPECT().
		FindByID(gomock.Any(), uint(42)).
		Return(&dbmysql.Message{MessageID: 42, SenderID: "user-a", Content: "old"}, nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(nil)

	msg, err := f.svc.EditMessage(context.Background(), "user-a", 42, "new text")
	require.NoError(t, err)
	assert.Equal(t, "new text", msg.Content)
	require.NotNil(t, msg.EditedAt)
}

func TestChatService_EditMessage_OnlySender(t *testing.T) {
	f := newServiceFixture(t)

	f.repo.EXPECT().
		FindByID(gomock.Any(), uint(42)).
		Return(&dbmysql.Message{MessageID: 42, SenderID: "user-a"}, nil)

	_, err := f.svc.EditMessage(context.Background(), "user-b", 42, "hijack")
	assert.ErrorIs(t, err, common.ErrNotParticipant)
}

func TestChatService_GetMessageHistory(t *testing.T) {
	f := newServiceFixture(t)

	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "user-a").
		Return(true, nil)
	f.repo.EXPECT().
		FetchHistory(gomock.Any(), "conv-1", 50, 0).
		Return([]*dbmysql.Message{{MessageID: 1}, {MessageID: 2}}, nil)

	messages, err := f.svc.GetMessageHistory(context.Background(), "user-a", "conv-1", 50, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestChatService_GetMessageHistory_NotParticipant(t *testing.T) {
	f := newServiceFixture(t)

	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "outsider").
		Return(false, nil)

	_, err := f.svc.GetMessageHistory(context.Background(), "outsider", "conv-1", 50, 0)
	assert.ErrorIs(t, err, common.ErrNotParticipant)
}

func TestChatService_MarkRead_EmitsReceipt(t *testing.T) {
	f := newServiceFixture(t)

	f.deliveryRepo.EXPECT().
		Advance(gomock.Any(), uint(42), "user-b", common.DeliveryStateRead, gomock.Any()).
		Return(true, nil)
	f.deliveryRepo.EXPECT().
		Find(gomock.Any(), uint(42), "user-b").
		Return(&dbmysql.MessageDeliveryStatus{
			MessageID:       42,
			RecipientID:     "user-b",
			Status:          common.DeliveryStateRead,
			StatusTimestamp: time.Now().UTC(),
		}, nil)
	f.repo.EXPECT().
		FindByID(gomock.Any(), uint(42)).
		Return(&dbmysql.Message{MessageID: 42, ConversationID: "conv-1", SenderID: "user-a"}, nil)
	f.pushes.EXPECT().
		NotifyAsync(gomock.Any()).
		Do(func(event common.PushEvent) {
			assert.Equal(t, common.PushEventReadReceipt, event.Type)
			assert.Equal(t, "user-a", event.UserID)
			assert.Equal(t, "user-b", event.SenderID)
		})

	view, err := f.svc.MarkRead(context.Background(), 42, "user-b")
	require.NoError(t, err)
	assert.Equal(t, common.DeliveryStateRead, view.Status)
}

func TestChatService_MarkDelivered_NoReceipt(t *testing.T) {
	f := newServiceFixture(t)

	f.deliveryRepo.EXPECT().
		Advance(gomock.Any(), uint(42), "user-b", common.DeliveryStateDelivered, gomock.Any()).
		Return(true, nil)
	f.deliveryRepo.EXPECT().
		Find(gomock.Any(), uint(42), "user-b").
		Return(&dbmysql.MessageDeliveryStatus{
			MessageID:   42,
			RecipientID: "user-b",
			Status:      common.DeliveryStateDelivered,
		}, nil)
	f.pushes.EXPECT().NotifyAsync(gomock.Any()).Times(0)

	view, err := f.svc.MarkDelivered(context.Background(), 42, "user-b")
	require.NoError(t, err)
	assert.Equal(t, common.DeliveryStateDelivered, view.Status)
}

func TestChatService_ChangeStatus_Regression(t *testing.T) {
	f := newServiceFixture(t)

	f.deliveryRepo.EXPECT().
		Find(gomock.Any(), uint(42), "user-b").
		Return(&dbmysql.MessageDeliveryStatus{
			MessageID:   42,
			RecipientID: "user-b",
			Status:      common.DeliveryStateRead,
		}, nil)

	_, err := f.svc.ChangeStatus(context.Background(), 42, "user-b", common.DeliveryStateSent)
	assert.ErrorIs(t, err, common.ErrInvalidTransition)
}

func TestChatService_CreatePrivateConversation(t *testing.T) {
	f := newServiceFixture(t)

	f.conversations.EXPECT().
		CreatePrivate(gomock.Any(), "user-a", "user-b").
		Return(&dbmysql.Conversation{ID: "conv-1", Type: dbmysql.ConversationTypePrivate}, nil)

	conv, err := f.svc.CreatePrivateConversation(context.Background(), "user-a", "user-b")
	require.NoError(t, err)
	assert.Equal(t, dbmysql.ConversationTypePrivate, conv.Type)
}

func TestChatService_CreatePrivateConversation_SelfChat(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.CreatePrivateConversation(context.Background(), "user-a", "user-a")
	assert.Error(t, err)
}

func TestChatService_ListParticipants(t *testing.T) {
	f := newServiceFixture(t)

	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "user-a").
		Return(true, nil)
	f.conversations.EXPECT().
		Participants(gomock.Any(), "conv-1").
		Return([]string{"user-a", "user-b", "user-c"}, nil)

	participants, err := f.svc.ListParticipants(context.Background(), "user-a", "conv-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-a", "user-b", "user-c"}, participants)
}

func TestChatService_ListParticipants_NotParticipant(t *testing.T) {
	f := newServiceFixture(t)

	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "outsider").
		Return(false, nil)

	_, err := f.svc.ListParticipants(context.Background(), "outsider", "conv-1")
	assert.ErrorIs(t, err, common.ErrNotParticipant)
}

func TestChatService_ListStatuses_NotParticipant(t *testing.T) {
	f := newServiceFixture(t)

	f.repo.EXPECT().
		FindByID(gomock.Any(), uint(42)).
		Return(&dbmysql.Message{MessageID: 42, ConversationID: "conv-1", SenderID: "user-a"}, nil)
	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "outsider").
		Return(false, nil)

	_, err := f.svc.ListStatuses(context.Background(), 42, "outsider")
	assert.ErrorIs(t, err, common.ErrNotParticipant)
}

func TestChatService_DeliverySummary(t *testing.T) {
	f := newServiceFixture(t)

	f.repo.EXPECT().
		FindByID(gomock.Any(), uint(42)).
		Return(&dbmysql.Message{MessageID: 42, ConversationID: "conv-1", SenderID: "user-a"}, nil)
	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "user-a").
		Return(true, nil)
	f.deliveryRepo.EXPECT().
		ListByMessage(gomock.Any(), uint(42)).
		Return([]*dbmysql.MessageDeliveryStatus{
			{MessageID: 42, RecipientID: "user-b", Status: common.DeliveryStateRead},
			{MessageID: 42, RecipientID: "user-c", Status: common.DeliveryStateSent},
		}, nil)

	summary, err := f.svc.DeliverySummary(context.Background(), 42, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.ReadCount)
	assert.Equal(t, []string{"user-c"}, summary.UnreadRecipients)
}

func TestChatService_DeliverySummary_NotParticipant(t *testing.T) {
	f := newServiceFixture(t)

	f.repo.EXPECT().
		FindByID(gomock.Any(), uint(42)).
		Return(&dbmysql.Message{MessageID: 42, ConversationID: "conv-1", SenderID: "user-a"}, nil)
	f.conversations.EXPECT().
		IsParticipant(gomock.Any(), "conv-1", "outsider").
		Return(false, nil)

	_, err := f.svc.DeliverySummary(context.Background(), 42, "outsider")
	assert.ErrorIs(t, err, common.ErrNotParticipant)
}

func TestChatService_CreateGroupConversation_Validation(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.CreateGroupConversation(context.Background(), "user-a", "", []string{"user-b"})
	assert.Error(t, err)

	_, err = f.svc.CreateGroupConversation(context.Background(), "user-a", "team", nil)
	assert.Error(t, err)
}
