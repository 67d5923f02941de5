package dbmysql

import (
	"time"
)

// MediaRef links a message to a file stored in GridFS.
type MediaRef struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FileID      string    `gorm:"size:24;uniqueIndex" json:"file_id"` // MongoDB ObjectID
	MessageID   *uint     `gorm:"index" json:"message_id,omitempty"`
	Type        string    `gorm:"size:20" json:"type"` // image, video, document
	FileName    string    `gorm:"size:255" json:"file_name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	URL         string    `gorm:"size:500" json:"url"`
	Size        int64     `json:"size"`
	UploadedBy  string    `gorm:"size:36;index" json:"uploaded_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MediaRef) TableName() string {
	return "media_refs"
}
