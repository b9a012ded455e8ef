package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prepwise/interview-api/internal/models"
	"prepwise/interview-api/internal/repositories"
)

type FeedbackHandler struct {
	interviewRepo repositories.InterviewRepository
}

func NewFeedbackHandler(interviewRepo repositories.InterviewRepository) *FeedbackHandler {
	return &FeedbackHandler{
		interviewRepo: interviewRepo,
	}
}

// HandleGetFeedback handles GET /api/feedback/:interviewId
func (h *FeedbackHandler) HandleGetFeedback(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	interview, err := h.interviewRepo.FindByIDWithFeedback(interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		log.Printf("❌ Error fetching feedback: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch feedback",
		})
	}

	if interview.Feedback == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Feedback not yet generated",
		})
	}

	// Duration in whole minutes; zero while the interview has no end time
	duration := 0
	if interview.EndedAt != nil {
		duration = int(interview.EndedAt.Sub(interview.StartedAt).Minutes())
	}

	questionsAsked := 0
	for _, msg := range interview.Messages {
		if msg.Role == models.RoleAI {
			questionsAsked++
		}
	}

	return c.JSON(models.FeedbackResponse{
		Success:  true,
		Feedback: interview.Feedback,
		Interview: models.InterviewSummary{
			ID:             interview.ID.String(),
			Position:       interview.Position,
			Company:        interview.Company,
			Duration:       duration,
			QuestionsAsked: questionsAsked,
			StartedAt:      interview.StartedAt,
			EndedAt:        interview.EndedAt,
		},
	})
}
