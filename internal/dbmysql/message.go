package dbmysql

import (
	"time"
)

type Message struct {
	MessageID      uint       `gorm:"primaryKey;column:message_id" json:"message_id"`
	ConversationID string     `gorm:"index:idx_message_conversation;size:36;not null" json:"conversation_id"`
	SenderID       string     `gorm:"index;size:36;not null" json:"sender_id"`
	Content        string     `gorm:"type:text" json:"content"`
	SentAt         time.Time  `json:"sent_at"`
	EditedAt       *time.Time `json:"edited_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// EditContent replaces the body and stamps the edit time. Delivery rows are
// untouched by edits.
func (m *Message) EditContent(newContent string, at time.Time) {
	m.Content = newContent
	m.EditedAt = &at
}
