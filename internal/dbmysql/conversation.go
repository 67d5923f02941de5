package dbmysql

import (
	"time"
)

type ConversationType string

const (
	ConversationTypePrivate ConversationType = "private"
	ConversationTypeGroup   ConversationType = "group"
)

type Conversation struct {
	ID        string           `gorm:"primaryKey;size:36" json:"id"`
	Type      ConversationType `gorm:"size:20;not null;index" json:"type"`
	Name      string           `gorm:"size:255" json:"name"`
	CreatorID string           `gorm:"size:36;index" json:"creator_id"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// ConversationParticipant is one membership row. Participants are plain id
// relations; the conversation never holds user objects.
type ConversationParticipant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"size:36;not null;uniqueIndex:uk_conversation_user;index" json:"conversation_id"`
	UserID         string    `gorm:"size:36;not null;uniqueIndex:uk_conversation_user;index" json:"user_id"`
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}
