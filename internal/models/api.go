package models

import "time"

type StartInterviewResponse struct {
	Success       bool   `json:"success"`
	InterviewID   string `json:"interviewId"`
	FirstQuestion string `json:"firstQuestion"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type SendMessageResponse struct {
	Success     bool     `json:"success"`
	UserMessage *Message `json:"userMessage"`
	AIMessage   *Message `json:"aiMessage"`
}

type EndInterviewResponse struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId"`
}

// InterviewSummary is the derived projection returned alongside feedback.
// Duration is whole minutes between start and end; QuestionsAsked counts
// AI-authored messages.
type InterviewSummary struct {
	ID             string     `json:"id"`
	Position       string     `json:"position"`
	Company        *string    `json:"company"`
	Duration       int        `json:"duration"`
	QuestionsAsked int        `json:"questionsAsked"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt"`
}

type FeedbackResponse struct {
	Success   bool             `json:"success"`
	Feedback  *Feedback        `json:"feedback"`
	Interview InterviewSummary `json:"interview"`
}
