package handlers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prepwise/interview-api/internal/models"
	"prepwise/interview-api/internal/repositories"
	"prepwise/interview-api/internal/services"
)

type InterviewHandler struct {
	userRepo      repositories.UserRepository
	interviewRepo repositories.InterviewRepository
	messageRepo   repositories.MessageRepository
	feedbackRepo  repositories.FeedbackRepository
	interviewer   services.InterviewerService
	storage       services.StorageService
	pdfParser     services.PDFParserService
	maxFileSize   int64
}

func NewInterviewHandler(
	userRepo repositories.UserRepository,
	interviewRepo repositories.InterviewRepository,
	messageRepo repositories.MessageRepository,
	feedbackRepo repositories.FeedbackRepository,
	interviewer services.InterviewerService,
	storage services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *InterviewHandler {
	return &InterviewHandler{
		userRepo:      userRepo,
		interviewRepo: interviewRepo,
		messageRepo:   messageRepo,
		feedbackRepo:  feedbackRepo,
		interviewer:   interviewer,
		storage:       storage,
		pdfParser:     pdfParser,
		maxFileSize:   maxFileSize,
	}
}

// HandleStart handles POST /api/interviews/start
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	resumeFile, err := c.FormFile("resume")
	jobDescription := c.FormValue("jobDescription")
	position := c.FormValue("position")
	company := c.FormValue("company")

	if err != nil || jobDescription == "" || position == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: resume, job description, and position are required",
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	if strings.ToLower(filepath.Ext(resumeFile.Filename)) != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are allowed",
		})
	}

	// Save file
	filename, filePath, err := h.storage.SaveFile(resumeFile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save resume file",
		})
	}

	// Parse PDF before any rows are created
	resumeText, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		log.Printf("❌ PDF parsing error: %v", err)
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse PDF. Please ensure it's a valid PDF file.",
		})
	}

	// Create a guest user
	user := &models.User{
		ID:        uuid.New(),
		Name:      "Guest User",
		CreatedAt: time.Now(),
	}
	if err := h.userRepo.Create(user); err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start interview",
		})
	}

	var companyPtr *string
	if company != "" {
		companyPtr = &company
	}

	now := time.Now()
	interview := &models.Interview{
		ID:             uuid.New(),
		UserID:         user.ID,
		ResumeText:     resumeText,
		ResumeFile:     filename,
		JobDescription: jobDescription,
		Position:       position,
		Company:        companyPtr,
		Status:         models.StatusActive,
		StartedAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.interviewRepo.Create(interview); err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start interview",
		})
	}

	// Generate the opening question; soft-fail to a deterministic greeting
	firstQuestion, err := h.interviewer.GenerateQuestion(c.UserContext(), services.QuestionParams{
		ResumeText:       resumeText,
		JobDescription:   jobDescription,
		Position:         position,
		Company:          company,
		PreviousMessages: nil,
		MessageCount:     0,
	})
	if err != nil {
		log.Printf("⚠️  Error generating first question: %v", err)
		firstQuestion = fallbackFirstQuestion(position, company)
	}

	message := &models.Message{
		ID:          uuid.New(),
		InterviewID: interview.ID,
		Role:        models.RoleAI,
		Content:     firstQuestion,
		CreatedAt:   time.Now(),
	}
	if err := h.messageRepo.Create(message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start interview",
		})
	}

	log.Printf("✅ Interview created successfully: %s", interview.ID)

	return c.JSON(models.StartInterviewResponse{
		Success:       true,
		InterviewID:   interview.ID.String(),
		FirstQuestion: firstQuestion,
	})
}

// HandleGetInterview handles GET /api/interviews/:id
func (h *InterviewHandler) HandleGetInterview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	interview, err := h.interviewRepo.FindByIDWithDetails(id)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		log.Printf("❌ Error fetching interview: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch interview",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"interview": interview,
	})
}

// HandleEnd handles POST /api/interviews/:id/end
func (h *InterviewHandler) HandleEnd(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	interview, err := h.interviewRepo.FindByIDWithMessages(id)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		log.Printf("❌ Error ending interview: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to end interview",
		})
	}

	// Completion happens exactly once
	if interview.Status != models.StatusActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Interview already completed",
		})
	}

	if err := h.interviewRepo.Complete(id, time.Now()); err != nil {
		log.Printf("❌ Error completing interview: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to end interview",
		})
	}

	// Generate feedback from the full transcript; soft-fail to the fixed
	// fallback evaluation
	result, err := h.interviewer.GenerateFeedback(c.UserContext(), services.FeedbackParams{
		ResumeText:     interview.ResumeText,
		JobDescription: interview.JobDescription,
		Position:       interview.Position,
		Messages:       interview.Messages,
	})
	if err != nil {
		log.Printf("⚠️  Error generating feedback: %v", err)
		result = fallbackFeedback()
	}

	feedback := &models.Feedback{
		ID:                 uuid.New(),
		InterviewID:        interview.ID,
		OverallRating:      clampScore(result.OverallRating),
		TechnicalScore:     clampScore(result.TechnicalScore),
		CommunicationScore: clampScore(result.CommunicationScore),
		ProblemSolving:     clampScore(result.ProblemSolving),
		CultureFit:         clampScore(result.CultureFit),
		Strengths:          result.Strengths,
		Improvements:       result.Improvements,
		DetailedFeedback:   result.DetailedFeedback,
		Recommendations:    result.Recommendations,
		NextSteps:          result.NextSteps,
		CreatedAt:          time.Now(),
	}
	if err := h.feedbackRepo.Create(feedback); err != nil {
		log.Printf("❌ Error saving feedback: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to end interview",
		})
	}

	return c.JSON(models.EndInterviewResponse{
		Success:    true,
		FeedbackID: feedback.ID.String(),
	})
}
