package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	RoleAI   MessageRole = "AI"
	RoleUser MessageRole = "USER"
)

// Message is one turn of dialogue. Rows are append-only and ordered by
// creation time.
type Message struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	InterviewID uuid.UUID   `gorm:"type:uuid;not null;index" json:"interviewId"`
	Role        MessageRole `gorm:"type:text;not null" json:"role"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
