package delivery

import (
	"context"
	"fmt"
	"log"
	"time"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
)

// ParticipantSource resolves a conversation's participant ids. Implemented
// by the conversation repository; returns common.ErrConversationNotFound
// for unknown conversations.
type ParticipantSource interface {
	Participants(ctx context.Context, conversationID string) ([]string, error)
}

// Fanout turns one saved message into per-recipient tracking rows and a
// live/queued partition. Private and group conversations run the identical
// path; a two-party chat is just a fan-out with one recipient.
type Fanout struct {
	tracker *Tracker
	source  ParticipantSource
	oracle  common.PresenceOracle
	pushes  common.Subject
}

func NewFanout(tracker *Tracker, source ParticipantSource, oracle common.PresenceOracle, pushes common.Subject) *Fanout {
	return &Fanout{
		tracker: tracker,
		source:  source,
		oracle:  oracle,
		pushes:  pushes,
	}
}

// Dispatch resolves the conversation's participants minus the sender,
// initializes tracking rows for them, and partitions them by reachability.
// Every recipient starts at SENT either way; live targets additionally get
// an async push. Push delivery is fire-and-forget - a failed push never
// unwinds the persisted rows.
func (f *Fanout) Dispatch(ctx context.Context, savedMessage *dbmysql.Message) (*common.FanoutResult, error) {
	participants, err := f.source.Participants(ctx, savedMessage.ConversationID)
	if err != nil {
		return nil, err
	}

	recipients := make([]string, 0, len(participants))
	seen := make(map[string]bool, len(participants))
	for _, userID := range participants {
		if userID == savedMessage.SenderID || seen[userID] {
			continue
		}
		seen[userID] = true
		recipients = append(recipients, userID)
	}

	if len(recipients) == 0 {
		return nil, fmt.Errorf("conversation %s: %w",
			savedMessage.ConversationID, common.ErrEmptyParticipantSet)
	}

	if _, err := f.tracker.Initialize(ctx, savedMessage.MessageID, recipients, savedMessage.SenderID); err != nil {
		return nil, err
	}

	result := &common.FanoutResult{
		MessageID:     savedMessage.MessageID,
		LiveTargets:   make([]string, 0, len(recipients)),
		QueuedTargets: make([]string, 0, len(recipients)),
	}

	for _, recipientID := range recipients {
		if f.oracle.IsReachable(ctx, recipientID) {
			result.LiveTargets = append(result.LiveTargets, recipientID)
		} else {
			result.QueuedTargets = append(result.QueuedTargets, recipientID)
		}
	}

	for _, recipientID := range result.LiveTargets {
		f.pushes.NotifyAsync(common.PushEvent{
			Type:           common.PushEventMessage,
			UserID:         recipientID,
			ConversationID: savedMessage.ConversationID,
			MessageID:      savedMessage.MessageID,
			SenderID:       savedMessage.SenderID,
			Content:        savedMessage.Content,
			OccurredAt:     time.Now().UTC(),
		})
	}

	log.Printf("message %d fanned out: %d live, %d queued",
		savedMessage.MessageID, len(result.LiveTargets), len(result.QueuedTargets))

	return result, nil
}
