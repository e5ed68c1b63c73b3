package models

// ErrorResponse is the generic error body for swagger docs.
type ErrorResponse struct {
	Error   string `json:"error" example:"something went wrong"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the generic success body for mutations.
type MessageResponse struct {
	Message string `json:"message" example:"updated"`
}

// ValidationErrorResponse carries inline field errors for a rejected submission.
// Keys are size enum names; values are user-facing messages.
type ValidationErrorResponse struct {
	Error       string            `json:"error" example:"Fix Invalid Prices"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}
