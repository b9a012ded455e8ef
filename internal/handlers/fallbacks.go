package handlers

import (
	"fmt"

	"prepwise/interview-api/internal/models"
	"prepwise/interview-api/internal/services"
)

// fallbackFollowUp is returned when question generation fails mid-interview
// so the dialogue never hard-fails on the completion API.
const fallbackFollowUp = "I apologize, but I'm having trouble generating a response. Let's continue with: Can you tell me more about your experience with the technologies mentioned in the job description?"

// fallbackFirstQuestion is the deterministic greeting used when the opening
// question cannot be generated.
func fallbackFirstQuestion(position, company string) string {
	companyPart := ""
	if company != "" {
		companyPart = fmt.Sprintf(" at %s", company)
	}
	return fmt.Sprintf(
		"Hello! Thank you for applying for the %s position%s. I've reviewed your resume and I'm excited to learn more about your background. To start, could you please tell me about yourself and what attracted you to this %s role?",
		position, companyPart, position,
	)
}

// fallbackFeedback is the fixed evaluation stored when feedback generation
// fails after an interview ends.
func fallbackFeedback() *services.FeedbackResult {
	return &services.FeedbackResult{
		OverallRating:      7,
		TechnicalScore:     7,
		CommunicationScore: 8,
		ProblemSolving:     7,
		CultureFit:         7,
		Strengths:          []string{"Good communication", "Relevant experience", "Enthusiastic"},
		Improvements:       []string{"Provide more specific examples", "Deeper technical details", "Practice STAR method"},
		DetailedFeedback:   "Thank you for completing the interview. Your responses showed good understanding of the role requirements.",
		Recommendations: []models.Recommendation{
			{Title: "STAR Method Guide", URL: "https://www.indeed.com/career-advice/interviewing/how-to-use-the-star-interview-response-technique"},
		},
		NextSteps: []string{"Review technical concepts", "Prepare more examples", "Practice behavioral questions"},
	}
}

// clampScore keeps model-produced scores inside the documented 1-10 range.
func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
