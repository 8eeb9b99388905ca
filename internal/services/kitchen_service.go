package services

import (
	"fmt"
	"sort"
	"time"

	"portside_pos_backend/internal/events"
	"portside_pos_backend/internal/metrics"
	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"
)

// LateAfterMinutes is how long a ticket may wait before it is flagged late.
const LateAfterMinutes = 15

// KitchenService reads and clears the active orders.
type KitchenService interface {
	Tickets() ([]models.KitchenTicket, error)
	// CompleteByRef removes the order with the given ref.
	CompleteByRef(ref string) (*models.Order, error)
	// CompleteByTimestamp removes every active order stamped with ts and
	// returns how many went away.
	CompleteByTimestamp(ts int64) (int, error)
}

type kitchenService struct {
	store     repositories.CollectionStore
	orderRepo repositories.OrderRepository
	publisher events.Publisher
	now       func() time.Time
}

// NewKitchenService creates a new instance of KitchenService.
func NewKitchenService(store repositories.CollectionStore, or repositories.OrderRepository, publisher events.Publisher) KitchenService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &kitchenService{store: store, orderRepo: or, publisher: publisher, now: time.Now}
}

// BuildTickets turns active orders into kitchen tickets, oldest first.
// Lines are grouped by item name in the order they were rung up.
func BuildTickets(orders []models.Order, now time.Time) []models.KitchenTicket {
	sorted := append([]models.Order{}, orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	nowMs := now.UnixMilli()
	tickets := make([]models.KitchenTicket, 0, len(sorted))
	for _, o := range sorted {
		elapsed := (nowMs - o.Timestamp) / int64(time.Minute/time.Millisecond)
		if nowMs < o.Timestamp {
			elapsed = 0
		}
		tickets = append(tickets, models.KitchenTicket{
			Ref:            o.Ref,
			OrderID:        o.ID.String(),
			Server:         o.Server,
			Timestamp:      o.Timestamp,
			ElapsedMinutes: elapsed,
			Late:           elapsed > LateAfterMinutes,
			Lines:          groupLines(o.Items),
		})
	}
	return tickets
}

func groupLines(items []models.CartLine) []models.TicketLine {
	lines := []models.TicketLine{}
	index := make(map[string]int)
	for _, item := range items {
		if i, ok := index[item.Name]; ok {
			lines[i].Quantity++
			continue
		}
		index[item.Name] = len(lines)
		lines = append(lines, models.TicketLine{Name: item.Name, Quantity: 1})
	}
	return lines
}

func (s *kitchenService) Tickets() ([]models.KitchenTicket, error) {
	orders, err := s.orderRepo.ListActive(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load active orders: %w", err)
	}
	metrics.ActiveOrders.Set(float64(len(orders)))
	return BuildTickets(orders, s.now()), nil
}

func (s *kitchenService) complete(match func(models.Order) bool) ([]models.Order, error) {
	var removed []models.Order
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		var err error
		removed, err = s.orderRepo.RemoveActive(tx, match)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}
	for _, o := range removed {
		metrics.OrdersCompleted.Inc()
		utils.LogInfo("Order completed", map[string]interface{}{"order_id": o.ID.String(), "ref": o.Ref})
		if err := s.publisher.Publish(events.OrderCompleted, events.OrderEvent{
			Ref:        o.Ref,
			OrderID:    o.ID.String(),
			Server:     o.Server,
			ItemCount:  len(o.Items),
			Timestamp:  o.Timestamp,
			OccurredAt: s.now(),
		}); err != nil {
			utils.LogWarn(err, "Failed to publish order event", map[string]interface{}{"routing_key": events.OrderCompleted, "ref": o.Ref})
		}
	}
	return removed, nil
}

func (s *kitchenService) CompleteByRef(ref string) (*models.Order, error) {
	if ref == "" {
		return nil, ErrOrderNotFound
	}
	removed, err := s.complete(func(o models.Order) bool { return o.Ref == ref })
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, ErrOrderNotFound
	}
	return &removed[0], nil
}

func (s *kitchenService) CompleteByTimestamp(ts int64) (int, error) {
	removed, err := s.complete(func(o models.Order) bool { return o.Timestamp == ts })
	if err != nil {
		return 0, err
	}
	return len(removed), nil
}
