package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepwise/interview-api/internal/models"
)

type InterviewRepository interface {
	Create(interview *models.Interview) error
	FindByID(id uuid.UUID) (*models.Interview, error)
	FindByIDWithMessages(id uuid.UUID) (*models.Interview, error)
	FindByIDWithDetails(id uuid.UUID) (*models.Interview, error)
	FindByIDWithFeedback(id uuid.UUID) (*models.Interview, error)
	Complete(id uuid.UUID, endedAt time.Time) error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByID(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Where("id = ?", id).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// FindByIDWithMessages loads the interview and its messages ordered by
// creation time.
func (r *interviewRepository) FindByIDWithMessages(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// FindByIDWithDetails loads the interview with its ordered messages and the
// guest user.
func (r *interviewRepository) FindByIDWithDetails(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("User").
		Where("id = ?", id).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// FindByIDWithFeedback loads the interview with its feedback (if any) and
// ordered messages, for the feedback projection.
func (r *interviewRepository) FindByIDWithFeedback(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Preload("Feedback").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// Complete transitions the interview to COMPLETED and records the end time.
func (r *interviewRepository) Complete(id uuid.UUID, endedAt time.Time) error {
	result := r.db.Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.StatusCompleted,
			"ended_at":   endedAt,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to complete interview: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}

	return nil
}
