package repository

import (
	"sync"

	"payment_service_echo/internal/models"
)

// InMemoryPaymentRepository keeps payments in a mutex-guarded map.
// Insertion order is tracked explicitly so list operations are deterministic,
// which matters for the restricted-refund first-match selection.
type InMemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]models.Payment
	order    []string
}

// NewInMemoryPaymentRepository creates an empty in-memory repository
func NewInMemoryPaymentRepository() *InMemoryPaymentRepository {
	return &InMemoryPaymentRepository{
		payments: make(map[string]models.Payment),
	}
}

// Save upserts a payment by id and returns the stored value
func (r *InMemoryPaymentRepository) Save(p models.Payment) models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.payments[p.ID] = p
	return p
}

// FindByID looks a payment up by id
func (r *InMemoryPaymentRepository) FindByID(id string) (models.Payment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	return p, ok
}

// FindByOrderID returns all payments of an order in creation order
func (r *InMemoryPaymentRepository) FindByOrderID(orderID string) []models.Payment {
	return r.filter(func(p models.Payment) bool { return p.OrderID == orderID })
}

// FindByCustomerID returns all payments of a customer in creation order
func (r *InMemoryPaymentRepository) FindByCustomerID(customerID string) []models.Payment {
	return r.filter(func(p models.Payment) bool { return p.CustomerID == customerID })
}

// FindByStatus returns all payments with the given status in creation order
func (r *InMemoryPaymentRepository) FindByStatus(status models.PaymentStatus) []models.Payment {
	return r.filter(func(p models.Payment) bool { return p.Status == status })
}

// FindAll returns a snapshot of every payment in creation order.
// The returned slice is independent of internal storage.
func (r *InMemoryPaymentRepository) FindAll() []models.Payment {
	return r.filter(func(models.Payment) bool { return true })
}

// DeleteByID removes a payment; it reports whether a record existed
func (r *InMemoryPaymentRepository) DeleteByID(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[id]; !ok {
		return false
	}
	delete(r.payments, id)
	for i, storedID := range r.order {
		if storedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// ExistsByID reports whether a payment with the given id is stored
func (r *InMemoryPaymentRepository) ExistsByID(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.payments[id]
	return ok
}

// Count returns the number of stored payments
func (r *InMemoryPaymentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.payments)
}

// DeleteAll clears the repository. Administrative use only.
func (r *InMemoryPaymentRepository) DeleteAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments = make(map[string]models.Payment)
	r.order = nil
}

func (r *InMemoryPaymentRepository) filter(keep func(models.Payment) bool) []models.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Payment, 0, len(r.order))
	for _, id := range r.order {
		if p := r.payments[id]; keep(p) {
			result = append(result, p)
		}
	}
	return result
}
