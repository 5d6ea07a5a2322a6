package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payment_service_echo/internal/models"
	"payment_service_echo/internal/repository"
)

// RefundService handles direct refunds by payment id and restricted refunds
// bounded by a caller-supplied maximum
type RefundService struct {
	repo   repository.PaymentRepository
	logger *zap.Logger
}

func NewRefundService(repo repository.PaymentRepository, logger *zap.Logger) *RefundService {
	return &RefundService{repo: repo, logger: logger}
}

// Refund refunds a completed payment up to its original amount
func (s *RefundService) Refund(paymentID string, amount decimal.Decimal) (models.Payment, error) {
	s.logger.Info("processing refund",
		zap.String("paymentId", paymentID),
		zap.String("amount", amount.String()))

	payment, ok := s.repo.FindByID(paymentID)
	if !ok {
		return models.Payment{}, models.NewPaymentNotFoundError(paymentID)
	}

	if payment.Status != models.StatusCompleted {
		return models.Payment{}, &models.ValidationError{Message: "only completed payments can be refunded"}
	}

	if amount.GreaterThan(payment.Amount) {
		return models.Payment{}, &models.ValidationError{Message: "refund amount cannot exceed the payment amount"}
	}

	payment.Status = models.StatusRefunded
	payment.UpdatedAt = time.Now()
	payment.ResponseCode = "REFUNDED"
	payment.ResponseMessage = "refund processed successfully for " + amount.String()

	updated := s.repo.Save(payment)
	s.logger.Info("refund processed", zap.String("paymentId", updated.ID))
	return updated, nil
}

// RestrictedRefund refunds the first completed payment of an order, after
// checking the requested amount against the caller-supplied limit. The limit
// check happens before any repository access so an over-limit request fails
// without touching the store.
func (s *RefundService) RestrictedRefund(req models.RefundRequest) (models.Payment, error) {
	s.logger.Info("processing restricted refund", zap.String("orderId", req.OrderID))

	if err := validateRefundRequest(req); err != nil {
		return models.Payment{}, err
	}

	amount := *req.Amount
	maxRefundable := *req.MaxRefundable

	if amount.GreaterThan(maxRefundable) {
		return models.Payment{}, models.NewValidationError("amount", amount.String(),
			fmt.Sprintf("refund amount (%s) exceeds the maximum allowed (%s)",
				amount.StringFixed(2), maxRefundable.StringFixed(2)))
	}

	orderPayments := s.repo.FindByOrderID(req.OrderID)
	if len(orderPayments) == 0 {
		return models.Payment{}, &models.NotFoundError{Message: "no payments found for order: " + req.OrderID}
	}

	// First completed payment in creation order wins; no secondary ordering
	var target *models.Payment
	for i := range orderPayments {
		if orderPayments[i].Status == models.StatusCompleted {
			target = &orderPayments[i]
			break
		}
	}
	if target == nil {
		return models.Payment{}, models.NewValidationError("status", "N/A",
			"no completed payments available for refund in order: "+req.OrderID)
	}

	if amount.GreaterThan(target.Amount) {
		return models.Payment{}, models.NewValidationError("amount", amount.String(),
			fmt.Sprintf("refund amount (%s) cannot exceed the original payment amount (%s)",
				amount.StringFixed(2), target.Amount.StringFixed(2)))
	}

	target.Status = models.StatusRefunded
	target.UpdatedAt = time.Now()
	target.ResponseCode = "RESTRICTED_REFUND_SUCCESS"
	target.ResponseMessage = fmt.Sprintf(
		"restricted refund processed successfully. amount: %s, limit: %s, remaining: %s",
		amount.StringFixed(2), maxRefundable.StringFixed(2), req.RemainingRefundable().StringFixed(2))

	updated := s.repo.Save(*target)
	s.logger.Info("restricted refund processed",
		zap.String("paymentId", updated.ID),
		zap.String("orderId", req.OrderID))
	return updated, nil
}

func validateRefundRequest(req models.RefundRequest) error {
	if strings.TrimSpace(req.OrderID) == "" {
		return models.NewValidationError("orderId", req.OrderID, "orderId is required")
	}
	if req.Amount == nil {
		return models.NewValidationError("amount", "", "amount is required")
	}
	if req.MaxRefundable == nil {
		return models.NewValidationError("maxRefundable", "", "maxRefundable is required")
	}
	if !req.Amount.IsPositive() {
		return models.NewValidationError("amount", req.Amount.String(), "amount must be greater than 0")
	}
	if !req.MaxRefundable.IsPositive() {
		return models.NewValidationError("maxRefundable", req.MaxRefundable.String(), "maxRefundable must be greater than 0")
	}
	return nil
}
