package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepwise/interview-api/internal/models"
)

type MessageRepository interface {
	Create(message *models.Message) error
	ListByInterview(interviewID uuid.UUID) ([]models.Message, error)
	ListRecent(interviewID uuid.UUID, limit int) ([]models.Message, error)
	CountByRole(interviewID uuid.UUID, role models.MessageRole) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) ListByInterview(interviewID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// ListRecent returns up to limit of the newest messages, oldest first, for
// use as conversation context.
func (r *messageRepository) ListRecent(interviewID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}

	// Reverse back into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *messageRepository) CountByRole(interviewID uuid.UUID, role models.MessageRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("interview_id = ? AND role = ?", interviewID, role).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
