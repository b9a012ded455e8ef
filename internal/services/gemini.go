package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"prepwise/interview-api/internal/models"
)

// QuestionParams carries the interview context for generating the next
// question. MessageCount is the number of questions already asked.
type QuestionParams struct {
	ResumeText       string
	JobDescription   string
	Position         string
	Company          string
	PreviousMessages []models.Message
	MessageCount     int
}

// FeedbackParams carries the full transcript for final evaluation.
type FeedbackParams struct {
	ResumeText     string
	JobDescription string
	Position       string
	Messages       []models.Message
}

// FeedbackResult is the structured evaluation parsed from the model's JSON
// response.
type FeedbackResult struct {
	OverallRating      int                     `json:"overallRating"`
	TechnicalScore     int                     `json:"technicalScore"`
	CommunicationScore int                     `json:"communicationScore"`
	ProblemSolving     int                     `json:"problemSolving"`
	CultureFit         int                     `json:"cultureFit"`
	Strengths          []string                `json:"strengths"`
	Improvements       []string                `json:"improvements"`
	DetailedFeedback   string                  `json:"detailedFeedback"`
	Recommendations    []models.Recommendation `json:"recommendations"`
	NextSteps          []string                `json:"nextSteps"`
}

// InterviewerService turns interview context into completion requests.
// Failures propagate to the caller; handlers own the fallbacks.
type InterviewerService interface {
	GenerateQuestion(ctx context.Context, params QuestionParams) (string, error)
	GenerateFeedback(ctx context.Context, params FeedbackParams) (*FeedbackResult, error)
}

type interviewerService struct {
	client        *genai.Client
	questionModel string
	feedbackModel string
	promptBuilder *PromptBuilder
}

func NewInterviewerService(apiKey, questionModel, feedbackModel string) (InterviewerService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &interviewerService{
		client:        client,
		questionModel: questionModel,
		feedbackModel: feedbackModel,
		promptBuilder: NewPromptBuilder(),
	}, nil
}

// GenerateQuestion implements InterviewerService.
func (s *interviewerService) GenerateQuestion(ctx context.Context, params QuestionParams) (string, error) {
	system := s.promptBuilder.BuildQuestionPrompt(
		params.ResumeText,
		params.JobDescription,
		params.Position,
		params.Company,
		params.MessageCount,
	)

	contents := make([]*genai.Content, 0, len(params.PreviousMessages)+1)
	for _, msg := range params.PreviousMessages {
		role := genai.Role(genai.RoleUser)
		if msg.Role == models.RoleAI {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	// The opening turn has no history; the model answers from the system
	// instruction alone.
	if len(contents) == 0 {
		contents = append(contents, genai.NewContentFromText("Please begin the interview.", genai.RoleUser))
	}

	temperature := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		MaxOutputTokens:   200,
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.questionModel, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate question: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateFeedback implements InterviewerService.
func (s *interviewerService) GenerateFeedback(ctx context.Context, params FeedbackParams) (*FeedbackResult, error) {
	system := s.promptBuilder.BuildFeedbackPrompt(params.Position, params.JobDescription)
	transcript := FormatTranscript(params.Messages)

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf("Interview Transcript:\n\n%s", transcript), genai.RoleUser),
	}

	temperature := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		MaxOutputTokens:   1000,
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.feedbackModel, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate feedback: %w", err)
	}

	if resp == nil {
		return nil, fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	var result FeedbackResult
	if err := ParseFeedbackJSON(text, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ParseFeedbackJSON unmarshals a model response that may wrap the JSON
// object in markdown fences.
func ParseFeedbackJSON(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to parse feedback response: %w", err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object boundaries
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
