package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"payment_service_echo/internal/handlers"
	"payment_service_echo/internal/middleware"
	"payment_service_echo/internal/repository"
	"payment_service_echo/internal/services"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"errorCode"`
}

type paymentBody struct {
	ID              string `json:"id"`
	OrderID         string `json:"orderId"`
	Status          string `json:"status"`
	TransactionID   string `json:"transactionId"`
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
	Gateway         string `json:"gateway"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := zap.NewNop()
	repo := repository.NewInMemoryPaymentRepository()
	paymentService := services.NewPaymentService(repo, logger)
	refundService := services.NewRefundService(repo, logger)
	h := handlers.NewPaymentHandler(paymentService, refundService, nil, time.Minute)

	e := echo.New()
	e.HTTPErrorHandler = middleware.CustomErrorHandler(logger)

	payments := e.Group("/payments")
	payments.POST("", h.CreatePayment)
	payments.GET("", h.ListPayments)
	payments.GET("/stats", h.Statistics)
	payments.GET("/health", h.Health)
	payments.POST("/restricted-refund", h.RestrictedRefund)
	payments.GET("/order/:orderId", h.GetPaymentsByOrder)
	payments.GET("/customer/:customerId", h.GetPaymentsByCustomer)
	payments.GET("/status/:status", h.GetPaymentsByStatus)
	payments.GET("/:paymentId", h.GetPayment)
	payments.PATCH("/:paymentId/status", h.UpdateStatus)
	payments.POST("/:paymentId/refund", h.Refund)
	payments.DELETE("/:paymentId", h.DeletePayment)

	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func createPayment(t *testing.T, e *echo.Echo, amount string) paymentBody {
	t.Helper()
	rec := doRequest(e, http.MethodPost, "/payments",
		`{"orderId":"order-1","amount":`+amount+`,"paymentMethod":"CARD","currency":"USD","customerId":"customer-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var p paymentBody
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestCreatePaymentEndpoint(t *testing.T) {
	e := newTestServer(t)

	p := createPayment(t, e, "150.00")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "COMPLETED", p.Status)
	assert.Equal(t, "SUCCESS", p.ResponseCode)
	assert.Equal(t, "DEFAULT", p.Gateway)
	assert.Regexp(t, `^TXN_[A-Z0-9]{8}$`, p.TransactionID)
}

func TestCreatePaymentValidationMapsTo400(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/payments",
		`{"orderId":"","amount":100,"paymentMethod":"CARD","currency":"USD","customerId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	assert.Contains(t, env.Message, "orderId")
}

func TestGetPaymentNotFoundMapsTo404(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/payments/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "PAYMENT_NOT_FOUND", env.ErrorCode)
	assert.Contains(t, env.Message, "nope")
}

func TestGetPaymentEndpoint(t *testing.T) {
	e := newTestServer(t)
	created := createPayment(t, e, "75.00")

	rec := doRequest(e, http.MethodGet, "/payments/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var p paymentBody
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, created.ID, p.ID)
}

func TestListAndFilterEndpoints(t *testing.T) {
	e := newTestServer(t)
	createPayment(t, e, "10.00")
	createPayment(t, e, "20000.00")

	rec := doRequest(e, http.MethodGet, "/payments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Message, "2 payments")

	rec = doRequest(e, http.MethodGet, "/payments/order/order-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/payments/status/PENDING", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	assert.Contains(t, env.Message, "1 payments")

	rec = doRequest(e, http.MethodGet, "/payments/status/BOGUS", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	e := newTestServer(t)
	p := createPayment(t, e, "20000.00") // parks in PENDING

	rec := doRequest(e, http.MethodPatch, "/payments/"+p.ID+"/status?status=COMPLETED", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// COMPLETED -> COMPLETED is not a valid edge
	rec = doRequest(e, http.MethodPatch, "/payments/"+p.ID+"/status?status=COMPLETED", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
}

func TestRefundEndpoint(t *testing.T) {
	e := newTestServer(t)
	p := createPayment(t, e, "300.00")

	rec := doRequest(e, http.MethodPost, "/payments/"+p.ID+"/refund?amount=120.50", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var refunded paymentBody
	require.NoError(t, json.Unmarshal(env.Data, &refunded))
	assert.Equal(t, "REFUNDED", refunded.Status)

	rec = doRequest(e, http.MethodPost, "/payments/"+p.ID+"/refund?amount=not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRestrictedRefundEndpoint(t *testing.T) {
	e := newTestServer(t)
	createPayment(t, e, "800.00")

	rec := doRequest(e, http.MethodPost, "/payments/restricted-refund",
		`{"orderId":"order-1","amount":500.00,"maxRefundable":500.00}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	var refunded paymentBody
	require.NoError(t, json.Unmarshal(env.Data, &refunded))
	assert.Equal(t, "REFUNDED", refunded.Status)
	assert.Equal(t, "RESTRICTED_REFUND_SUCCESS", refunded.ResponseCode)
	assert.Contains(t, refunded.ResponseMessage, "remaining: 0.00")
}

func TestRestrictedRefundOverLimitEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/payments/restricted-refund",
		`{"orderId":"order-1","amount":600,"maxRefundable":500}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
}

func TestStatisticsEndpoint(t *testing.T) {
	e := newTestServer(t)
	createPayment(t, e, "1500.00")
	createPayment(t, e, "20000.00")
	createPayment(t, e, "0.50")

	rec := doRequest(e, http.MethodGet, "/payments/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var stats struct {
		TotalPayments        int64   `json:"totalPayments"`
		CompletedPayments    int64   `json:"completedPayments"`
		TotalCompletedAmount string  `json:"totalCompletedAmount"`
		SuccessRate          float64 `json:"successRate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(3), stats.TotalPayments)
	assert.Equal(t, int64(1), stats.CompletedPayments)
	assert.Equal(t, "1500", stats.TotalCompletedAmount)
	assert.InDelta(t, 33.333, stats.SuccessRate, 0.001)
}

func TestDeletePaymentEndpoint(t *testing.T) {
	e := newTestServer(t)
	p := createPayment(t, e, "50.00")

	rec := doRequest(e, http.MethodDelete, "/payments/"+p.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/payments/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/payments/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}
