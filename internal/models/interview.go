package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	StatusActive    InterviewStatus = "ACTIVE"
	StatusCompleted InterviewStatus = "COMPLETED"
)

type Interview struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null" json:"userId"`
	ResumeText     string          `gorm:"type:text;not null" json:"resumeText"`
	ResumeFile     string          `gorm:"type:text" json:"resumeFile,omitempty"`
	JobDescription string          `gorm:"type:text;not null" json:"jobDescription"`
	Position       string          `gorm:"type:text;not null" json:"position"`
	Company        *string         `gorm:"type:text" json:"company,omitempty"`
	Status         InterviewStatus `gorm:"not null;default:'ACTIVE'" json:"status"`
	StartedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"startedAt"`
	EndedAt        *time.Time      `gorm:"type:timestamp" json:"endedAt,omitempty"`
	CreatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Messages []Message `gorm:"foreignKey:InterviewID" json:"messages,omitempty"`
	Feedback *Feedback `gorm:"foreignKey:InterviewID" json:"feedback,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}
