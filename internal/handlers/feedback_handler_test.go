package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepwise/interview-api/internal/models"
)

func seedFeedback(t *testing.T, env *testEnv, interviewID uuid.UUID) *models.Feedback {
	t.Helper()
	feedback := &models.Feedback{
		ID:                 uuid.New(),
		InterviewID:        interviewID,
		OverallRating:      8,
		TechnicalScore:     7,
		CommunicationScore: 9,
		ProblemSolving:     8,
		CultureFit:         8,
		Strengths:          []string{"clarity"},
		Improvements:       []string{"depth"},
		DetailedFeedback:   "Good interview.",
		Recommendations:    []models.Recommendation{{Title: "Guide", URL: "https://example.com"}},
		NextSteps:          []string{"practice"},
		CreatedAt:          time.Now(),
	}
	require.NoError(t, env.db.Create(feedback).Error)
	return feedback
}

func getFeedback(t *testing.T, env *testEnv, interviewID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/feedback/"+interviewID, nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestGetFeedbackInterviewNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := getFeedback(t, env, "11111111-2222-3333-4444-555555555555")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Interview not found", body.Error)
}

func TestGetFeedbackNotYetGenerated(t *testing.T) {
	env := newTestEnv(t)
	interview := seedInterview(t, env.db, models.StatusActive)

	resp := getFeedback(t, env, interview.ID.String())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Distinguished from a missing interview by the message
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Feedback not yet generated", body.Error)
}

func TestGetFeedbackDerivedFields(t *testing.T) {
	env := newTestEnv(t)
	interview := seedInterview(t, env.db, models.StatusCompleted)

	// 9m30s elapsed rounds down to 9 whole minutes
	started := time.Now().Add(-time.Hour)
	ended := started.Add(9*time.Minute + 30*time.Second)
	require.NoError(t, env.db.Model(&models.Interview{}).
		Where("id = ?", interview.ID).
		Updates(map[string]interface{}{"started_at": started, "ended_at": ended}).Error)

	seedMessage(t, env.db, interview.ID, models.RoleAI, "q1", started)
	seedMessage(t, env.db, interview.ID, models.RoleUser, "a1", started.Add(time.Minute))
	seedMessage(t, env.db, interview.ID, models.RoleAI, "q2", started.Add(2*time.Minute))

	seedFeedback(t, env, interview.ID)

	resp := getFeedback(t, env, interview.ID.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.FeedbackResponse
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	require.NotNil(t, body.Feedback)
	assert.Equal(t, 8, body.Feedback.OverallRating)
	assert.Equal(t, 9, body.Interview.Duration)
	assert.Equal(t, 2, body.Interview.QuestionsAsked)
	assert.Equal(t, "Backend Engineer", body.Interview.Position)
	require.NotNil(t, body.Interview.Company)
	assert.Equal(t, "Acme", *body.Interview.Company)
}

func TestGetFeedbackZeroDurationWithoutEnd(t *testing.T) {
	env := newTestEnv(t)
	interview := seedInterview(t, env.db, models.StatusActive)
	seedFeedback(t, env, interview.ID)

	resp := getFeedback(t, env, interview.ID.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.FeedbackResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, 0, body.Interview.Duration)
}
