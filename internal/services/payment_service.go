package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payment_service_echo/internal/models"
	"payment_service_echo/internal/repository"
)

// Amount thresholds driving the processing simulation
var (
	maxPaymentAmount = decimal.NewFromInt(500000)
	reviewThreshold  = decimal.NewFromInt(10000)
	minimumAmount    = decimal.NewFromInt(1)
)

const defaultGateway = "DEFAULT"

// PaymentService owns the payment lifecycle: creation with simulated
// processing, state transitions and statistics
type PaymentService struct {
	repo   repository.PaymentRepository
	logger *zap.Logger
}

func NewPaymentService(repo repository.PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{repo: repo, logger: logger}
}

// CreatePayment validates the request, creates a PENDING payment and runs the
// amount-based processing simulation before persisting
func (s *PaymentService) CreatePayment(req models.CreatePaymentRequest) (models.Payment, error) {
	s.logger.Info("creating payment", zap.String("orderId", req.OrderID))

	if err := validateCreateRequest(req); err != nil {
		return models.Payment{}, err
	}

	now := time.Now()
	gateway := req.Gateway
	if gateway == "" {
		gateway = defaultGateway
	}

	payment := models.Payment{
		ID:            uuid.NewString(),
		OrderID:       req.OrderID,
		CustomerID:    req.CustomerID,
		Amount:        *req.Amount,
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		PaymentMethod: req.PaymentMethod,
		Currency:      req.Currency,
		Description:   req.Description,
		Gateway:       gateway,
	}

	processPayment(&payment)

	saved := s.repo.Save(payment)
	s.logger.Info("payment created",
		zap.String("paymentId", saved.ID),
		zap.String("status", string(saved.Status)))
	return saved, nil
}

// GetPayment returns a payment by id
func (s *PaymentService) GetPayment(paymentID string) (models.Payment, error) {
	payment, ok := s.repo.FindByID(paymentID)
	if !ok {
		return models.Payment{}, models.NewPaymentNotFoundError(paymentID)
	}
	return payment, nil
}

// GetPaymentsByOrder returns every payment of an order
func (s *PaymentService) GetPaymentsByOrder(orderID string) []models.Payment {
	return s.repo.FindByOrderID(orderID)
}

// GetPaymentsByCustomer returns every payment of a customer
func (s *PaymentService) GetPaymentsByCustomer(customerID string) []models.Payment {
	return s.repo.FindByCustomerID(customerID)
}

// GetPaymentsByStatus returns every payment currently in the given status
func (s *PaymentService) GetPaymentsByStatus(status models.PaymentStatus) []models.Payment {
	return s.repo.FindByStatus(status)
}

// ListPayments returns all payments
func (s *PaymentService) ListPayments() []models.Payment {
	return s.repo.FindAll()
}

// UpdateStatus applies a state transition, rejecting edges outside the
// state machine. A transition into COMPLETED mirrors the processing
// simulation: success response fields and a fresh transaction id.
func (s *PaymentService) UpdateStatus(paymentID string, newStatus models.PaymentStatus) (models.Payment, error) {
	s.logger.Info("updating payment status",
		zap.String("paymentId", paymentID),
		zap.String("newStatus", string(newStatus)))

	payment, ok := s.repo.FindByID(paymentID)
	if !ok {
		return models.Payment{}, models.NewPaymentNotFoundError(paymentID)
	}

	if !payment.Status.CanTransitionTo(newStatus) {
		return models.Payment{}, models.NewValidationError("status", string(newStatus),
			"cannot change payment status from "+string(payment.Status)+" to "+string(newStatus))
	}

	payment.Status = newStatus
	payment.UpdatedAt = time.Now()

	if newStatus == models.StatusCompleted {
		payment.ResponseCode = "SUCCESS"
		payment.ResponseMessage = "payment processed successfully"
		payment.TransactionID = newTransactionID()
	}

	return s.repo.Save(payment), nil
}

// DeletePayment removes a payment record. Administrative use only.
func (s *PaymentService) DeletePayment(paymentID string) error {
	if !s.repo.DeleteByID(paymentID) {
		return models.NewPaymentNotFoundError(paymentID)
	}
	s.logger.Info("payment deleted", zap.String("paymentId", paymentID))
	return nil
}

// Statistics aggregates the full current record set
func (s *PaymentService) Statistics() models.Statistics {
	payments := s.repo.FindAll()

	stats := models.Statistics{
		TotalPayments:        int64(len(payments)),
		TotalCompletedAmount: decimal.Zero,
	}
	for _, p := range payments {
		switch p.Status {
		case models.StatusCompleted:
			stats.CompletedPayments++
			stats.TotalCompletedAmount = stats.TotalCompletedAmount.Add(p.Amount)
		case models.StatusPending:
			stats.PendingPayments++
		case models.StatusFailed:
			stats.FailedPayments++
		}
	}
	if stats.TotalPayments > 0 {
		stats.SuccessRate = float64(stats.CompletedPayments) / float64(stats.TotalPayments) * 100
	}
	return stats
}

// processPayment simulates gateway processing as a pure function of amount:
// high amounts stay pending for review, sub-unit amounts fail, everything
// else completes with a generated transaction id
func processPayment(p *models.Payment) {
	switch {
	case p.Amount.GreaterThan(reviewThreshold):
		p.Status = models.StatusPending
		p.ResponseMessage = "payment under review due to high amount"
	case p.Amount.LessThan(minimumAmount):
		p.Status = models.StatusFailed
		p.ResponseCode = "AMOUNT_TOO_LOW"
		p.ResponseMessage = "amount too low to process"
	default:
		p.Status = models.StatusCompleted
		p.ResponseCode = "SUCCESS"
		p.ResponseMessage = "payment processed successfully"
		p.TransactionID = newTransactionID()
	}
}

// newTransactionID yields ids of the form TXN_XXXXXXXX
func newTransactionID() string {
	return "TXN_" + strings.ToUpper(uuid.NewString()[:8])
}

func validateCreateRequest(req models.CreatePaymentRequest) error {
	if strings.TrimSpace(req.OrderID) == "" {
		return models.NewValidationError("orderId", req.OrderID, "orderId is required")
	}
	if req.Amount == nil {
		return models.NewValidationError("amount", "", "amount is required")
	}
	if !req.Amount.IsPositive() {
		return models.NewValidationError("amount", req.Amount.String(), "amount must be greater than 0")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return models.NewValidationError("paymentMethod", req.PaymentMethod, "paymentMethod is required")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return models.NewValidationError("currency", req.Currency, "currency is required")
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		return models.NewValidationError("customerId", req.CustomerID, "customerId is required")
	}
	if req.Amount.GreaterThan(maxPaymentAmount) {
		return models.NewValidationError("amount", req.Amount.String(), "amount exceeds the allowed limit")
	}
	return nil
}
