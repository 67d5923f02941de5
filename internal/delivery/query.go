package delivery

import (
	"context"

	"chatapp/internal/common"
	"chatapp/internal/delivery/repository"
)

// QueryService is the read side over delivery rows: no mutation, safe for
// unbounded concurrent reads.
type QueryService struct {
	repo repository.DeliveryRepository
}

func NewQueryService(repo repository.DeliveryRepository) *QueryService {
	return &QueryService{repo: repo}
}

// UnreadMessages lists the recipient's not-yet-read tracking rows across
// conversations, newest first.
func (q *QueryService) UnreadMessages(ctx context.Context, recipientID string, limit, offset int) ([]common.DeliveryStatusView, error) {
	rows, err := q.repo.UnreadForRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]common.DeliveryStatusView, len(rows))
	for i, row := range rows {
		views[i] = row.View()
	}
	return views, nil
}

// UnreadCounts returns the recipient's unread tally per conversation.
func (q *QueryService) UnreadCounts(ctx context.Context, recipientID string) ([]common.UnreadConversationCount, error) {
	return q.repo.CountUnreadPerConversation(ctx, recipientID)
}

// MessageStatuses lists every recipient's current state for one message.
func (q *QueryService) MessageStatuses(ctx context.Context, messageID uint) ([]common.DeliveryStatusView, error) {
	rows, err := q.repo.ListByMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	views := make([]common.DeliveryStatusView, len(rows))
	for i, row := range rows {
		views[i] = row.View()
	}
	return views, nil
}

// StatusFor looks up one recipient's state for one message.
func (q *QueryService) StatusFor(ctx context.Context, messageID uint, recipientID string) (common.DeliveryStatusView, error) {
	row, err := q.repo.Find(ctx, messageID, recipientID)
	if err != nil {
		return common.DeliveryStatusView{}, err
	}
	return row.View(), nil
}
