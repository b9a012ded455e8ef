package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is a study resource suggested in the final feedback.
type Recommendation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Feedback is the single structured evaluation produced when an interview
// completes. Scores are on a 1-10 scale.
type Feedback struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	InterviewID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"interviewId"`
	OverallRating      int              `gorm:"not null" json:"overallRating"`
	TechnicalScore     int              `gorm:"not null" json:"technicalScore"`
	CommunicationScore int              `gorm:"not null" json:"communicationScore"`
	ProblemSolving     int              `gorm:"not null" json:"problemSolving"`
	CultureFit         int              `gorm:"not null" json:"cultureFit"`
	Strengths          []string         `gorm:"type:jsonb;serializer:json" json:"strengths"`
	Improvements       []string         `gorm:"type:jsonb;serializer:json" json:"improvements"`
	DetailedFeedback   string           `gorm:"type:text" json:"detailedFeedback"`
	Recommendations    []Recommendation `gorm:"type:jsonb;serializer:json" json:"recommendations"`
	NextSteps          []string         `gorm:"type:jsonb;serializer:json" json:"nextSteps"`
	CreatedAt          time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
