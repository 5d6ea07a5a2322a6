package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusCompleted PaymentStatus = "COMPLETED"
	StatusFailed    PaymentStatus = "FAILED"
	StatusCancelled PaymentStatus = "CANCELLED"
	StatusRefunded  PaymentStatus = "REFUNDED"
)

// allowedTransitions defines the valid edges of the payment state machine.
// FAILED, CANCELLED and REFUNDED are terminal.
var allowedTransitions = map[PaymentStatus][]PaymentStatus{
	StatusPending:   {StatusCompleted, StatusFailed, StatusCancelled},
	StatusCompleted: {StatusRefunded},
	StatusFailed:    {},
	StatusCancelled: {},
	StatusRefunded:  {},
}

// CanTransitionTo reports whether moving from s to target is a valid edge
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts a raw string into a PaymentStatus
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(raw) {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded:
		return PaymentStatus(raw), nil
	}
	return "", fmt.Errorf("unknown payment status: %q", raw)
}

// Payment is a tracked monetary transaction record.
// Amounts use decimal.Decimal to avoid floating point rounding loss.
type Payment struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	CustomerID    string          `json:"customerId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PaymentStatus   `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	PaymentMethod string          `json:"paymentMethod"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description,omitempty"`
	Gateway       string          `json:"gateway"`

	// Populated by the processing/refund simulation
	TransactionID   string `json:"transactionId,omitempty"`
	ResponseCode    string `json:"responseCode,omitempty"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}
