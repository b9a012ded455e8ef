package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"prepwise/interview-api/internal/models"
	"prepwise/interview-api/internal/repositories"
	"prepwise/interview-api/internal/services"
)

// stubInterviewer substitutes the Gemini-backed service in handler tests.
type stubInterviewer struct {
	question    string
	questionErr error
	feedback    *services.FeedbackResult
	feedbackErr error

	lastQuestionParams services.QuestionParams
}

func (s *stubInterviewer) GenerateQuestion(ctx context.Context, params services.QuestionParams) (string, error) {
	s.lastQuestionParams = params
	if s.questionErr != nil {
		return "", s.questionErr
	}
	return s.question, nil
}

func (s *stubInterviewer) GenerateFeedback(ctx context.Context, params services.FeedbackParams) (*services.FeedbackResult, error) {
	if s.feedbackErr != nil {
		return nil, s.feedbackErr
	}
	return s.feedback, nil
}

// stubPDFParser substitutes real PDF extraction.
type stubPDFParser struct {
	text string
	err  error
}

func (s *stubPDFParser) ExtractText(filepath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type testEnv struct {
	app         *fiber.App
	db          *gorm.DB
	interviewer *stubInterviewer
	pdfParser   *stubPDFParser
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open sqlite")
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Interview{},
		&models.Message{},
		&models.Feedback{},
	), "failed to migrate")
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	interviewer := &stubInterviewer{
		question: "Tell me about yourself.",
		feedback: &services.FeedbackResult{
			OverallRating:      8,
			TechnicalScore:     8,
			CommunicationScore: 9,
			ProblemSolving:     7,
			CultureFit:         8,
			Strengths:          []string{"clear answers"},
			Improvements:       []string{"more depth"},
			DetailedFeedback:   "Solid performance overall.",
			Recommendations:    []models.Recommendation{{Title: "Guide", URL: "https://example.com"}},
			NextSteps:          []string{"practice"},
		},
	}
	pdfParser := &stubPDFParser{text: "John Doe\nBackend developer with Go experience."}

	userRepo := repositories.NewUserRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)

	storage := services.NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	interviewHandler := NewInterviewHandler(
		userRepo, interviewRepo, messageRepo, feedbackRepo,
		interviewer, storage, pdfParser, 10*1024*1024,
	)
	messageHandler := NewMessageHandler(interviewRepo, messageRepo, interviewer)
	feedbackHandler := NewFeedbackHandler(interviewRepo)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/interviews/start", interviewHandler.HandleStart)
	api.Get("/interviews/:id", interviewHandler.HandleGetInterview)
	api.Post("/interviews/:id/end", interviewHandler.HandleEnd)
	api.Post("/messages/:interviewId", messageHandler.HandleSend)
	api.Get("/messages/:interviewId", messageHandler.HandleGetMessages)
	api.Get("/feedback/:interviewId", feedbackHandler.HandleGetFeedback)

	return &testEnv{
		app:         app,
		db:          db,
		interviewer: interviewer,
		pdfParser:   pdfParser,
	}
}

// newStartRequest builds the multipart form for POST /api/interviews/start.
// Pass an empty filename to omit the resume part.
func newStartRequest(t *testing.T, filename, jobDescription, position, company string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, "%PDF-1.4 stub resume bytes")
		require.NoError(t, err)
	}
	if jobDescription != "" {
		require.NoError(t, writer.WriteField("jobDescription", jobDescription))
	}
	if position != "" {
		require.NoError(t, writer.WriteField("position", position))
	}
	if company != "" {
		require.NoError(t, writer.WriteField("company", company))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/interviews/start", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

// seedInterview inserts a user and an interview directly, returning the
// interview for use in message/end/feedback tests.
func seedInterview(t *testing.T, db *gorm.DB, status models.InterviewStatus) *models.Interview {
	t.Helper()
	user := &models.User{ID: uuid.New(), Name: "Guest User", CreatedAt: time.Now()}
	require.NoError(t, db.Create(user).Error)

	company := "Acme"
	now := time.Now()
	interview := &models.Interview{
		ID:             uuid.New(),
		UserID:         user.ID,
		ResumeText:     "Go developer resume",
		JobDescription: "Go microservices",
		Position:       "Backend Engineer",
		Company:        &company,
		Status:         status,
		StartedAt:      now.Add(-10 * time.Minute),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if status == models.StatusCompleted {
		ended := now
		interview.EndedAt = &ended
	}
	require.NoError(t, db.Create(interview).Error)
	return interview
}

// seedMessage appends a message row for an interview.
func seedMessage(t *testing.T, db *gorm.DB, interviewID uuid.UUID, role models.MessageRole, content string, at time.Time) *models.Message {
	t.Helper()
	msg := &models.Message{
		ID:          uuid.New(),
		InterviewID: interviewID,
		Role:        role,
		Content:     content,
		CreatedAt:   at,
	}
	require.NoError(t, db.Create(msg).Error)
	return msg
}
