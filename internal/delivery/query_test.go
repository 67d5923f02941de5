package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
	"chatapp/internal/delivery/mocks"
)

func TestQueryService_UnreadMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDeliveryRepository(ctrl)
	svc := NewQueryService(repo)

	now := time.Now().UTC()
	repo.EXPECT().
		UnreadForRecipient(gomock.Any(), "user-b", 20, 0).
		Return([]*dbmysql.MessageDeliveryStatus{
			{MessageID: 5, RecipientID: "user-b", Status: common.DeliveryStateDelivered, StatusTimestamp: now},
			{MessageID: 3, RecipientID: "user-b", Status: common.DeliveryStateSent, StatusTimestamp: now},
		}, nil)

	views, err := svc.UnreadMessages(context.Background(), "user-b", 20, 0)
	require.NoError(t, err)

	require.Len(t, views, 2)
	assert.Equal(t, uint(5), views[0].MessageID)
	assert.Equal(t, common.DeliveryStateDelivered, views[0].Status)
	assert.Equal(t, common.DeliveryStateSent, views[1].Status)
}

func TestQueryService_UnreadCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDeliveryRepository(ctrl)
	svc := NewQueryService(repo)

	repo.EXPECT().
		CountUnreadPerConversation(gomock.Any(), "user-b").
		Return([]common.UnreadConversationCount{
			{ConversationID: "conv-1", UnreadCount: 4},
			{ConversationID: "conv-2", UnreadCount: 1},
		}, nil)

	counts, err := svc.UnreadCounts(context.Background(), "user-b")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, int64(4), counts[0].UnreadCount)
}

func TestQueryService_MessageStatuses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDeliveryRepository(ctrl)
	svc := NewQueryService(repo)

	repo.EXPECT().
		ListByMessage(gomock.Any(), uint(42)).
		Return([]*dbmysql.MessageDeliveryStatus{
			{MessageID: 42, RecipientID: "user-b", Status: common.DeliveryStateRead},
			{MessageID: 42, RecipientID: "user-c", Status: common.DeliveryStateSent},
		}, nil)

	views, err := svc.MessageStatuses(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "user-b", views[0].RecipientID)
	assert.Equal(t, common.DeliveryStateRead, views[0].Status)
}

func TestQueryService_StatusFor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDeliveryRepository(ctrl)
	svc := NewQueryService(repo)

	repo.EXPECT().
		Find(gomock.Any(), uint(42), "user-b").
		Return(&dbmysql.MessageDeliveryStatus{
			MessageID:   42,
			RecipientID: "user-b",
			Status:      common.DeliveryStateDelivered,
		}, nil)

	view, err := svc.StatusFor(context.Background(), 42, "user-b")
	require.NoError(t, err)
	assert.Equal(t, common.DeliveryStateDelivered, view.Status)
}

func TestQueryService_StatusFor_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDeliveryRepository(ctrl)
	svc := NewQueryService(repo)

	repo.EXPECT().
		Find(gomock.Any(), uint(42), "ghost").
		Return(nil, common.ErrRecordNotFound)

	_, err := svc.StatusFor(context.Background(), 42, "ghost")
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}
