package repository

import "payment_service_echo/internal/models"

// PaymentRepository is the storage contract the services depend on.
// Implementations must be safe for concurrent use; list operations return
// snapshot copies that never alias internal storage.
type PaymentRepository interface {
	Save(p models.Payment) models.Payment
	FindByID(id string) (models.Payment, bool)
	FindByOrderID(orderID string) []models.Payment
	FindByCustomerID(customerID string) []models.Payment
	FindByStatus(status models.PaymentStatus) []models.Payment
	FindAll() []models.Payment
	DeleteByID(id string) bool
	ExistsByID(id string) bool
	Count() int
	DeleteAll()
}
