package delivery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
	"chatapp/internal/delivery/mocks"
)

func newFanoutFixture(t *testing.T) (*Fanout, *mocks.MockDeliveryRepository, *mocks.MockParticipantSource, *mocks.MockPresenceOracle, *mocks.MockSubject) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockDeliveryRepository(ctrl)
	source := mocks.NewMockParticipantSource(ctrl)
	oracle := mocks.NewMockPresenceOracle(ctrl)
	pushes := mocks.NewMockSubject(ctrl)

	fanout := NewFanout(NewTracker(repo), source, oracle, pushes)
	return fanout, repo, source, oracle, pushes
}

func TestFanout_Dispatch_PartitionsByReachability(t *testing.T) {
	fanout, repo, source, oracle, pushes := newFanoutFixture(t)

	msg := &dbmysql.Message{
		MessageID:      42,
		ConversationID: "conv-1",
		SenderID:       "user-a",
		Content:        "hello",
	}

	source.EXPECT().
		Participants(gomock.Any(), "conv-1").
		Return([]string{"user-a", "user-b", "user-c"}, nil)
	repo.EXPECT().
		CreateBatch(gomock.Any(), gomock.Len(2)).
		Return(nil)
	oracle.EXPECT().IsReachable(gomock.Any(), "user-b").Return(true)
	oracle.EXPECT().IsReachable(gomock.Any(), "user-c").Return(false)
	pushes.EXPECT().
		NotifyAsync(gomock.Any()).
		Do(func(event common.PushEvent) {
			assert.Equal(t, common.PushEventMessage, event.Type)
			assert.Equal(t, "user-b", event.UserID)
			assert.Equal(t, uint(42), event.MessageID)
			assert.Equal(t, "user-a", event.SenderID)
		})

	result, err := fanout.Dispatch(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, []string{"user-b"}, result.LiveTargets)
	assert.Equal(t, []string{"user-c"}, result.QueuedTargets)
	assert.Equal(t, 2, result.Recipients())
}

func TestFanout_Dispatch_SenderExcluded(t *testing.T) {
	fanout, repo, source, oracle, pushes := newFanoutFixture(t)

	msg := &dbmysql.Message{MessageID: 7, ConversationID: "conv-1", SenderID: "user-a"}

	source.EXPECT().
		Participants(gomock.Any(), "conv-1").
		Return([]string{"user-a", "user-b", "user-b", "user-c", "user-d"}, nil)
	repo.EXPECT().
		CreateBatch(gomock.Any(), gomock.Len(3)).
		Return(nil)
	oracle.EXPECT().IsReachable(gomock.Any(), gomock.Any()).Return(false).Times(3)
	pushes.EXPECT().NotifyAsync(gomock.Any()).Times(0)

	result, err := fanout.Dispatch(context.Background(), msg)
	require.NoError(t, err)

	assert.NotContains(t, result.QueuedTargets, "user-a")
	assert.Equal(t, 3, result.Recipients())
}

func TestFanout_Dispatch_SenderOnlyConversation(t *testing.T) {
	fanout, _, source, _, _ := newFanoutFixture(t)

	msg := &dbmysql.Message{MessageID: 7, ConversationID: "conv-solo", SenderID: "user-a"}

	source.EXPECT().
		Participants(gomock.Any(), "conv-solo").
		Return([]string{"user-a"}, nil)

	_, err := fanout.Dispatch(context.Background(), msg)
	assert.ErrorIs(t, err, common.ErrEmptyParticipantSet)
}

func TestFanout_Dispatch_UnknownConversation(t *testing.T) {
	fanout, _, source, _, _ := newFanoutFixture(t)

	msg := &dbmysql.Message{MessageID: 7, ConversationID: "conv-missing", SenderID: "user-a"}

	source.EXPECT().
		Participants(gomock.Any(), "conv-missing").
		Return(nil, common.ErrConversationNotFound)

	_, err := fanout.Dispatch(context.Background(), msg)
	assert.ErrorIs(t, err, common.ErrConversationNotFound)
}

func TestFanout_Dispatch_TrackingFailureAborts(t *testing.T) {
	fanout, repo, source, _, pushes := newFanoutFixture(t)

	msg := &dbmysql.Message{MessageID: 7, ConversationID: "conv-1", SenderID: "user-a"}

	source.EXPECT().
		Participants(gomock.Any(), "conv-1").
		Return([]string{"user-a", "user-b"}, nil)
	repo.EXPECT().
		CreateBatch(gomock.Any(), gomock.Any()).
		Return(assert.AnError)
	pushes.EXPECT().NotifyAsync(gomock.Any()).Times(0)

	_, err := fanout.Dispatch(context.Background(), msg)
	assert.Error(t, err)
}
