package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"payment_service_echo/internal/models"
	"payment_service_echo/internal/services"
)

// statsCacheKey is the Redis key holding the cached statistics report
const statsCacheKey = "payments:stats"

type PaymentHandler struct {
	paymentService *services.PaymentService
	refundService  *services.RefundService
	cache          *services.RedisCache
	statsTTL       time.Duration
}

func NewPaymentHandler(paymentService *services.PaymentService, refundService *services.RefundService, cache *services.RedisCache, statsTTL time.Duration) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		refundService:  refundService,
		cache:          cache,
		statsTTL:       statsTTL,
	}
}

// CreatePayment handles POST /payments
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req models.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	payment, err := h.paymentService.CreatePayment(req)
	if err != nil {
		return err
	}

	h.invalidateStats(c)
	return c.JSON(http.StatusCreated, SuccessResponse("payment created successfully", payment))
}

// GetPayment handles GET /payments/:paymentId
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	payment, err := h.paymentService.GetPayment(c.Param("paymentId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SuccessResponse("payment retrieved", payment))
}

// ListPayments handles GET /payments
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	payments := h.paymentService.ListPayments()
	return c.JSON(http.StatusOK, SuccessResponse(
		fmt.Sprintf("found %d payments", len(payments)), payments))
}

// GetPaymentsByOrder handles GET /payments/order/:orderId
func (h *PaymentHandler) GetPaymentsByOrder(c echo.Context) error {
	orderID := c.Param("orderId")
	payments := h.paymentService.GetPaymentsByOrder(orderID)
	return c.JSON(http.StatusOK, SuccessResponse(
		fmt.Sprintf("found %d payments for order %s", len(payments), orderID), payments))
}

// GetPaymentsByCustomer handles GET /payments/customer/:customerId
func (h *PaymentHandler) GetPaymentsByCustomer(c echo.Context) error {
	customerID := c.Param("customerId")
	payments := h.paymentService.GetPaymentsByCustomer(customerID)
	return c.JSON(http.StatusOK, SuccessResponse(
		fmt.Sprintf("found %d payments for customer %s", len(payments), customerID), payments))
}

// GetPaymentsByStatus handles GET /payments/status/:status
func (h *PaymentHandler) GetPaymentsByStatus(c echo.Context) error {
	status, err := models.ParsePaymentStatus(c.Param("status"))
	if err != nil {
		return models.NewValidationError("status", c.Param("status"), err.Error())
	}
	payments := h.paymentService.GetPaymentsByStatus(status)
	return c.JSON(http.StatusOK, SuccessResponse(
		fmt.Sprintf("found %d payments with status %s", len(payments), status), payments))
}

// UpdateStatus handles PATCH /payments/:paymentId/status?status=S
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	raw := c.QueryParam("status")
	status, err := models.ParsePaymentStatus(raw)
	if err != nil {
		return models.NewValidationError("status", raw, err.Error())
	}

	payment, err := h.paymentService.UpdateStatus(c.Param("paymentId"), status)
	if err != nil {
		return err
	}

	h.invalidateStats(c)
	return c.JSON(http.StatusOK, SuccessResponse("payment status updated to "+string(status), payment))
}

// Refund handles POST /payments/:paymentId/refund?amount=A
func (h *PaymentHandler) Refund(c echo.Context) error {
	raw := c.QueryParam("amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return models.NewValidationError("amount", raw, "amount must be a decimal number")
	}

	payment, err := h.refundService.Refund(c.Param("paymentId"), amount)
	if err != nil {
		return err
	}

	h.invalidateStats(c)
	return c.JSON(http.StatusOK, SuccessResponse("refund processed successfully", payment))
}

// RestrictedRefund handles POST /payments/restricted-refund
func (h *PaymentHandler) RestrictedRefund(c echo.Context) error {
	var req models.RefundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	payment, err := h.refundService.RestrictedRefund(req)
	if err != nil {
		return err
	}

	h.invalidateStats(c)
	return c.JSON(http.StatusOK, SuccessResponse(
		fmt.Sprintf("restricted refund processed successfully. amount: %s, limit: %s",
			req.Amount.StringFixed(2), req.MaxRefundable.StringFixed(2)), payment))
}

// DeletePayment handles DELETE /payments/:paymentId. Administrative.
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	if err := h.paymentService.DeletePayment(c.Param("paymentId")); err != nil {
		return err
	}
	h.invalidateStats(c)
	return c.JSON(http.StatusOK, SuccessResponse("payment deleted", nil))
}

// Statistics handles GET /payments/stats, served from cache when available
func (h *PaymentHandler) Statistics(c echo.Context) error {
	stats, err := services.GetOrSet(h.cache, c.Request().Context(), statsCacheKey, h.statsTTL,
		func() (models.Statistics, error) {
			return h.paymentService.Statistics(), nil
		})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SuccessResponse("statistics retrieved successfully", stats))
}

// Health handles GET /payments/health
func (h *PaymentHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse("payment service is up", nil))
}

// invalidateStats drops the cached statistics after any mutation
func (h *PaymentHandler) invalidateStats(c echo.Context) {
	h.cache.Delete(c.Request().Context(), statsCacheKey)
}
