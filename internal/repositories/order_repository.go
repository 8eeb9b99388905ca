package repositories

import (
	"portside_pos_backend/internal/models"
)

// OrderRepository covers the two order collections. They are independent
// copies: nothing links an active order to its history entry.
type OrderRepository interface {
	ListActive(exec CollectionStore) ([]models.Order, error)
	AppendActive(exec CollectionStore, order models.Order) error
	// RemoveActive drops every active order for which match is true and
	// returns the removed orders.
	RemoveActive(exec CollectionStore, match func(models.Order) bool) ([]models.Order, error)

	ListHistory(exec CollectionStore) ([]models.Order, error)
	AppendHistory(exec CollectionStore, order models.Order) error
}

type orderRepository struct{}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository() OrderRepository {
	return &orderRepository{}
}

func emptyOrders() []models.Order { return []models.Order{} }

func (r *orderRepository) list(exec CollectionStore, key string) ([]models.Order, error) {
	orders, err := loadCollection(exec, key, emptyOrders)
	if err != nil {
		return nil, err
	}
	// Drop entries that decoded to nothing useful instead of failing the screen.
	kept := orders[:0]
	for _, o := range orders {
		if o.Timestamp == 0 && len(o.Items) == 0 {
			continue
		}
		if o.Items == nil {
			o.Items = []models.CartLine{}
		}
		kept = append(kept, o)
	}
	return kept, nil
}

func (r *orderRepository) appendTo(exec CollectionStore, key string, order models.Order) error {
	orders, err := r.list(exec, key)
	if err != nil {
		return err
	}
	return exec.Write(key, append(orders, order))
}

func (r *orderRepository) ListActive(exec CollectionStore) ([]models.Order, error) {
	return r.list(exec, KeyActiveOrders)
}

func (r *orderRepository) AppendActive(exec CollectionStore, order models.Order) error {
	return r.appendTo(exec, KeyActiveOrders, order)
}

func (r *orderRepository) RemoveActive(exec CollectionStore, match func(models.Order) bool) ([]models.Order, error) {
	orders, err := r.list(exec, KeyActiveOrders)
	if err != nil {
		return nil, err
	}
	kept := make([]models.Order, 0, len(orders))
	removed := []models.Order{}
	for _, o := range orders {
		if match(o) {
			removed = append(removed, o)
			continue
		}
		kept = append(kept, o)
	}
	if len(removed) == 0 {
		return removed, nil
	}
	if err := exec.Write(KeyActiveOrders, kept); err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *orderRepository) ListHistory(exec CollectionStore) ([]models.Order, error) {
	return r.list(exec, KeySalesHistory)
}

func (r *orderRepository) AppendHistory(exec CollectionStore, order models.Order) error {
	return r.appendTo(exec, KeySalesHistory, order)
}
