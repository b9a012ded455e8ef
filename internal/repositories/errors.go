package repositories

import "errors"

// Sentinel errors so handlers can map lookups to distinct 404 responses.
var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrFeedbackNotFound  = errors.New("feedback not found")
)
