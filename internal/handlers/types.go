package handlers

import "time"

// APIResponse is the envelope every endpoint returns.
// ErrorCode is only set on failures.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	ErrorCode string      `json:"errorCode,omitempty"`
}

// SuccessResponse wraps data in a success envelope
func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// ErrorResponse builds a failure envelope with a machine-readable code
func ErrorResponse(message, errorCode string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
		ErrorCode: errorCode,
	}
}
