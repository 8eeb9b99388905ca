package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"portside_pos_backend/internal/events"
	"portside_pos_backend/internal/metrics"
	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"

	"github.com/google/uuid"
)

// FirstOrderNumber is the number a fresh register starts counting from.
const FirstOrderNumber = "101"

// AddLineRequest rings up one item. ItemID is a pointer so that id 0 binds
// and falls through to the unknown-item path.
type AddLineRequest struct {
	ItemID *int64 `json:"item_id" binding:"required"`
}

// OrderNumberRequest overrides the next order number.
type OrderNumberRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
}

// CheckoutRequest pays the current cart. An empty order number means
// "use the register's current number".
type CheckoutRequest struct {
	OrderNumber string `json:"order_number"`
}

// RegisterService is the order entry screen: one cart per signed-in user.
type RegisterService interface {
	Menu() (models.Catalog, error)
	Cart(session models.Session) (*models.CartView, error)
	AddLine(session models.Session, itemID int64) (*models.CartView, error)
	RemoveLine(session models.Session, index int) (*models.CartView, error)
	ClearCart(session models.Session) (*models.CartView, error)
	SetOrderNumber(session models.Session, number string) (*models.CartView, error)
	Checkout(session models.Session, req CheckoutRequest) (*models.Order, error)
}

type terminal struct {
	cart        Cart
	orderNumber string
}

type registerService struct {
	store       repositories.CollectionStore
	menuRepo    repositories.MenuRepository
	orderRepo   repositories.OrderRepository
	settingRepo repositories.SettingRepository
	publisher   events.Publisher

	now    func() time.Time
	newRef func() string

	mu        sync.Mutex
	terminals map[string]*terminal
}

// NewRegisterService creates a new instance of RegisterService.
func NewRegisterService(
	store repositories.CollectionStore,
	mr repositories.MenuRepository,
	or repositories.OrderRepository,
	sr repositories.SettingRepository,
	publisher events.Publisher,
) RegisterService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &registerService{
		store:       store,
		menuRepo:    mr,
		orderRepo:   or,
		settingRepo: sr,
		publisher:   publisher,
		now:         time.Now,
		newRef:      func() string { return uuid.NewString() },
		terminals:   make(map[string]*terminal),
	}
}

// terminalFor must be called with s.mu held.
func (s *registerService) terminalFor(session models.Session) *terminal {
	key := session.Username
	if key == "" {
		key = session.Name
	}
	t, ok := s.terminals[key]
	if !ok {
		t = &terminal{orderNumber: FirstOrderNumber}
		s.terminals[key] = t
	}
	return t
}

// view must be called with s.mu held.
func (s *registerService) view(session models.Session, t *terminal) (*models.CartView, error) {
	settings, err := s.settingRepo.GetSettings(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load register settings: %w", err)
	}
	lines := t.cart.Lines()
	totals := ComputeTotals(lines, settings.Tax)
	return &models.CartView{
		Server:      session.Name,
		OrderNumber: t.orderNumber,
		Lines:       lines,
		ItemCount:   len(lines),
		Totals:      totals,
		Display:     totals.Display(),
		Currency:    settings.Currency,
		TaxRate:     settings.Tax.String(),
	}, nil
}

func (s *registerService) Menu() (models.Catalog, error) {
	catalog, err := s.menuRepo.GetCatalog(s.store)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to load menu: %w", err)
	}
	return catalog, nil
}

func (s *registerService) Cart(session models.Session) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(session, s.terminalFor(session))
}

func (s *registerService) AddLine(session models.Session, itemID int64) (*models.CartView, error) {
	catalog, err := s.Menu()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.terminalFor(session)
	if !t.cart.AddLine(catalog, itemID) {
		utils.LogDebug("Item not on the menu, ignored", map[string]interface{}{"item_id": itemID})
	}
	return s.view(session, t)
}

func (s *registerService) RemoveLine(session models.Session, index int) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.terminalFor(session)
	t.cart.RemoveLine(index)
	return s.view(session, t)
}

func (s *registerService) ClearCart(session models.Session) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.terminalFor(session)
	t.cart.Clear()
	return s.view(session, t)
}

func (s *registerService) SetOrderNumber(session models.Session, number string) (*models.CartView, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: order number cannot be empty", ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.terminalFor(session)
	t.orderNumber = number
	return s.view(session, t)
}

// Checkout turns the cart into a pending order and sends it to both the
// kitchen and the sales history in one atomic write.
func (s *registerService) Checkout(session models.Session, req CheckoutRequest) (*models.Order, error) {
	order, err := s.finalize(session, req)
	if err != nil {
		return nil, err
	}
	s.publish(events.OrderFinalized, *order)
	return order, nil
}

func (s *registerService) finalize(session models.Session, req CheckoutRequest) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.terminalFor(session)
	if t.cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		orderNumber = t.orderNumber
	}

	settings, err := s.settingRepo.GetSettings(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load register settings: %w", err)
	}

	lines := t.cart.Lines()
	totals := ComputeTotals(lines, settings.Tax)
	order := models.Order{
		Ref:       s.newRef(),
		ID:        models.OrderNumber(orderNumber),
		Items:     lines,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Timestamp: s.now().UnixMilli(),
		Status:    models.OrderStatusPending,
		Server:    session.Name,
	}

	err = s.store.Atomically(func(tx repositories.CollectionStore) error {
		if err := s.orderRepo.AppendActive(tx, order); err != nil {
			return fmt.Errorf("failed to send order to kitchen: %w", err)
		}
		if err := s.orderRepo.AppendHistory(tx, order); err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.cart.Clear()
	if n, err := utils.StrToInt64(orderNumber); err == nil {
		t.orderNumber = utils.Int64ToStr(n + 1)
	} else {
		t.orderNumber = orderNumber
	}

	metrics.OrdersFinalized.Inc()
	metrics.OrderRevenue.Add(order.Total.InexactFloat64())
	utils.LogInfo("Order sent to kitchen", map[string]interface{}{
		"order_id": orderNumber, "ref": order.Ref, "server": order.Server, "total": models.Display(order.Total),
	})
	return &order, nil
}

func (s *registerService) publish(key string, order models.Order) {
	err := s.publisher.Publish(key, events.OrderEvent{
		Ref:        order.Ref,
		OrderID:    order.ID.String(),
		Server:     order.Server,
		Total:      models.Display(order.Total),
		ItemCount:  len(order.Items),
		Timestamp:  order.Timestamp,
		OccurredAt: s.now(),
	})
	if err != nil {
		utils.LogWarn(err, "Failed to publish order event", map[string]interface{}{"routing_key": key, "ref": order.Ref})
	}
}
