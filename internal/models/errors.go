package models

import "fmt"

// ValidationError means the caller's input violates a precondition.
// Field and Value identify the offending input when applicable.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (field %q, value %q)", e.Message, e.Field, e.Value)
	}
	return e.Message
}

// NewValidationError builds a field-level validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NotFoundError means a referenced payment or order has no matching record
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewPaymentNotFoundError reports a missing payment id
func NewPaymentNotFoundError(paymentID string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("payment not found with id: %s", paymentID)}
}
