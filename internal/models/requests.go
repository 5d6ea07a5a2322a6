package models

import "github.com/shopspring/decimal"

// CreatePaymentRequest carries the fields needed to create a payment.
// Amount is a pointer so a missing field can be told apart from zero.
type CreatePaymentRequest struct {
	OrderID       string           `json:"orderId"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod string           `json:"paymentMethod"`
	Currency      string           `json:"currency"`
	Description   string           `json:"description,omitempty"`
	CustomerID    string           `json:"customerId"`
	Gateway       string           `json:"gateway,omitempty"`
}

// RefundRequest is a restricted refund: the caller supplies the maximum
// amount they are willing to see refunded for the order
type RefundRequest struct {
	OrderID       string           `json:"orderId"`
	Amount        *decimal.Decimal `json:"amount"`
	MaxRefundable *decimal.Decimal `json:"maxRefundable"`
}

// RemainingRefundable returns the headroom left under the caller's limit
func (r RefundRequest) RemainingRefundable() decimal.Decimal {
	if r.Amount == nil || r.MaxRefundable == nil {
		return decimal.Zero
	}
	return r.MaxRefundable.Sub(*r.Amount)
}

// Statistics aggregates the current record set
type Statistics struct {
	TotalPayments        int64           `json:"totalPayments"`
	CompletedPayments    int64           `json:"completedPayments"`
	PendingPayments      int64           `json:"pendingPayments"`
	FailedPayments       int64           `json:"failedPayments"`
	TotalCompletedAmount decimal.Decimal `json:"totalCompletedAmount"`
	SuccessRate          float64         `json:"successRate"`
}
