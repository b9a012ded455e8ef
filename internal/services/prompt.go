package services

import (
	"fmt"
	"strings"

	"prepwise/interview-api/internal/models"
)

const (
	resumePromptLimit    = 1000
	jobDescPromptLimit   = 800
	jobDescFeedbackLimit = 500
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt creates the system instruction for the next interview
// question. messageCount is the number of questions already asked; phase
// hints shift the interview from warm-up to wrap-up as it progresses.
func (pb *PromptBuilder) BuildQuestionPrompt(resumeText, jobDescription, position, company string, messageCount int) string {
	companyPart := ""
	if company != "" {
		companyPart = fmt.Sprintf(" at %s", company)
	}

	var phaseHints strings.Builder
	if messageCount == 0 {
		phaseHints.WriteString("Start with a warm introduction and ask them to tell you about themselves.\n")
	}
	if messageCount >= 6 {
		phaseHints.WriteString("Start wrapping up the interview.\n")
	}
	if messageCount >= 8 {
		phaseHints.WriteString("Ask if they have any questions for you.\n")
	}

	return fmt.Sprintf(`You are an expert technical interviewer conducting an interview for a %s position%s.

Your goal is to:
1. Ask relevant questions based on the candidate's resume and the job description
2. Assess technical skills, problem-solving ability, and cultural fit
3. Keep questions concise and focused
4. Ask follow-up questions based on their responses
5. Gradually increase difficulty as the interview progresses
6. Be professional but friendly

Resume Summary: %s...

Job Description: %s...

Interview Progress: Question %d
%s`,
		position,
		companyPart,
		truncate(resumeText, resumePromptLimit),
		truncate(jobDescription, jobDescPromptLimit),
		messageCount+1,
		phaseHints.String(),
	)
}

// BuildFeedbackPrompt creates the system instruction for the final
// structured evaluation. The transcript is supplied as a separate user turn.
func (pb *PromptBuilder) BuildFeedbackPrompt(position, jobDescription string) string {
	return fmt.Sprintf(`You are an expert interview evaluator. Analyze this interview transcript and provide detailed feedback.

Position: %s
Job Description Summary: %s...

Provide feedback in the following JSON format:
{
  "overallRating": <1-10>,
  "technicalScore": <1-10>,
  "communicationScore": <1-10>,
  "problemSolving": <1-10>,
  "cultureFit": <1-10>,
  "strengths": ["strength1", "strength2", "strength3"],
  "improvements": ["improvement1", "improvement2", "improvement3"],
  "detailedFeedback": "A paragraph of detailed feedback",
  "recommendations": [
    {"title": "Resource Name", "url": "https://example.com"}
  ],
  "nextSteps": ["step1", "step2", "step3"]
}`,
		position,
		truncate(jobDescription, jobDescFeedbackLimit),
	)
}

// FormatTranscript renders messages as "ROLE: content" paragraphs for the
// feedback prompt.
func FormatTranscript(messages []models.Message) string {
	var parts []string
	for _, msg := range messages {
		parts = append(parts, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(parts, "\n\n")
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
