package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prepwise/interview-api/internal/models"
	"prepwise/interview-api/internal/repositories"
	"prepwise/interview-api/internal/services"
)

// contextMessageLimit caps how much history is sent to the completion API.
const contextMessageLimit = 20

type MessageHandler struct {
	interviewRepo repositories.InterviewRepository
	messageRepo   repositories.MessageRepository
	interviewer   services.InterviewerService
}

func NewMessageHandler(
	interviewRepo repositories.InterviewRepository,
	messageRepo repositories.MessageRepository,
	interviewer services.InterviewerService,
) *MessageHandler {
	return &MessageHandler{
		interviewRepo: interviewRepo,
		messageRepo:   messageRepo,
		interviewer:   interviewer,
	}
}

// HandleSend handles POST /api/messages/:interviewId
func (h *MessageHandler) HandleSend(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	content := strings.TrimSpace(req.Message)
	if content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message cannot be empty",
		})
	}

	interview, err := h.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		log.Printf("❌ Error sending message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	if interview.Status != models.StatusActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Interview is not active",
		})
	}

	// The user's turn is persisted before the completion call; if that call
	// fails the fallback below still produces an AI turn.
	userMessage := &models.Message{
		ID:          uuid.New(),
		InterviewID: interviewID,
		Role:        models.RoleUser,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := h.messageRepo.Create(userMessage); err != nil {
		log.Printf("❌ Error saving user message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	recent, err := h.messageRepo.ListRecent(interviewID, contextMessageLimit)
	if err != nil {
		log.Printf("⚠️  Error loading message context: %v", err)
		recent = []models.Message{*userMessage}
	}

	// Two rows per exchange, so half the prior messages is the number of
	// questions already asked.
	messageCount := (len(recent) - 1) / 2

	company := ""
	if interview.Company != nil {
		company = *interview.Company
	}

	aiResponse, err := h.interviewer.GenerateQuestion(c.UserContext(), services.QuestionParams{
		ResumeText:       interview.ResumeText,
		JobDescription:   interview.JobDescription,
		Position:         interview.Position,
		Company:          company,
		PreviousMessages: recent,
		MessageCount:     messageCount,
	})
	if err != nil {
		log.Printf("⚠️  Error generating AI response: %v", err)
		aiResponse = fallbackFollowUp
	}

	aiMessage := &models.Message{
		ID:          uuid.New(),
		InterviewID: interviewID,
		Role:        models.RoleAI,
		Content:     aiResponse,
		CreatedAt:   time.Now(),
	}
	if err := h.messageRepo.Create(aiMessage); err != nil {
		log.Printf("❌ Error saving AI message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.JSON(models.SendMessageResponse{
		Success:     true,
		UserMessage: userMessage,
		AIMessage:   aiMessage,
	})
}

// HandleGetMessages handles GET /api/messages/:interviewId
func (h *MessageHandler) HandleGetMessages(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	messages, err := h.messageRepo.ListByInterview(interviewID)
	if err != nil {
		log.Printf("❌ Error fetching messages: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch messages",
		})
	}

	if messages == nil {
		messages = []models.Message{}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}
