package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepwise/interview-api/internal/models"
)

type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	FindByInterviewID(interviewID uuid.UUID) (*models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *models.Feedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) FindByInterviewID(interviewID uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.Where("interview_id = ?", interviewID).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return &feedback, nil
}
