package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"portside_pos_backend/internal/metrics"
	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// expenseDateLayout matches the ISO timestamps older clients wrote.
const expenseDateLayout = "2006-01-02T15:04:05.000Z07:00"

// categoryAll disables the category filter.
const categoryAll = "all"

// StockItemRequest creates or edits a stock item.
type StockItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// UsageRequest records stock used up.
type UsageRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// InventoryService manages stock and the expenses its usage produces.
type InventoryService interface {
	Overview(search, category string) (*models.StockOverview, error)
	CreateItem(req StockItemRequest) (*models.StockItem, error)
	UpdateItem(id int64, req StockItemRequest) (*models.StockItem, error)
	DeleteItem(id int64) error
	RecordUsage(id int64, amount decimal.Decimal) (*models.ExpenseRecord, error)
	ListExpenses() ([]models.ExpenseRecord, error)
}

type inventoryService struct {
	store         repositories.CollectionStore
	inventoryRepo repositories.InventoryRepository
	loc           *time.Location
	now           func() time.Time
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(store repositories.CollectionStore, ir repositories.InventoryRepository, loc *time.Location) InventoryService {
	if loc == nil {
		loc = time.Local
	}
	return &inventoryService{store: store, inventoryRepo: ir, loc: loc, now: time.Now}
}

func (s *inventoryService) Overview(search, category string) (*models.StockOverview, error) {
	items, err := s.inventoryRepo.ListItems(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	expenses, err := s.inventoryRepo.ListExpenses(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	overview := BuildStockOverview(items, search, category)
	today := s.now().In(s.loc).Format(reportDateLayout)
	overview.DailyExpenses = decimal.Zero
	for _, e := range expenses {
		if expenseDate(e, s.loc) == today {
			overview.DailyExpenses = overview.DailyExpenses.Add(e.Cost)
		}
	}
	return &overview, nil
}

// BuildStockOverview filters the stock by name and category. The grand total
// and the low stock count cover every item, not just the filtered ones.
func BuildStockOverview(items []models.StockItem, search, category string) models.StockOverview {
	search = strings.TrimSpace(search)
	category = strings.TrimSpace(category)

	overview := models.StockOverview{Items: []models.StockRow{}, TotalValue: decimal.Zero}
	for _, item := range items {
		value := item.Value()
		overview.TotalValue = overview.TotalValue.Add(value)
		if item.IsLow() {
			overview.LowStockItemsCount++
		}
		if search != "" && !utils.ContainsFold(item.Name, search) {
			continue
		}
		if category != "" && !strings.EqualFold(category, categoryAll) && item.Category != category {
			continue
		}
		overview.Items = append(overview.Items, models.StockRow{
			StockItem:    item,
			Low:          item.IsLow(),
			TotalValue:   value,
			ValueDisplay: models.Display(value),
		})
	}
	return overview
}

func validateStockRequest(req StockItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Quantity.IsNegative() {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}

func (s *inventoryService) CreateItem(req StockItemRequest) (*models.StockItem, error) {
	if err := validateStockRequest(req); err != nil {
		return nil, err
	}

	var created models.StockItem
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		items, err := s.inventoryRepo.ListItems(tx)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		created = models.StockItem{
			ID:        utils.NextID(s.now(), ids),
			Name:      strings.TrimSpace(req.Name),
			Category:  strings.TrimSpace(req.Category),
			Unit:      strings.TrimSpace(req.Unit),
			Quantity:  req.Quantity,
			Price:     req.Price,
			Threshold: models.DefaultStockThreshold,
		}
		return s.inventoryRepo.SaveItems(tx, append(items, created))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stock item: %w", err)
	}
	utils.LogInfo("Stock item created", map[string]interface{}{"stock_id": created.ID, "name": created.Name})
	return &created, nil
}

// UpdateItem replaces the editable fields; id and threshold are kept.
func (s *inventoryService) UpdateItem(id int64, req StockItemRequest) (*models.StockItem, error) {
	if err := validateStockRequest(req); err != nil {
		return nil, err
	}

	var updated models.StockItem
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		items, err := s.inventoryRepo.ListItems(tx)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].ID != id {
				continue
			}
			items[i].Name = strings.TrimSpace(req.Name)
			items[i].Category = strings.TrimSpace(req.Category)
			items[i].Unit = strings.TrimSpace(req.Unit)
			items[i].Quantity = req.Quantity
			items[i].Price = req.Price
			updated = items[i]
			return s.inventoryRepo.SaveItems(tx, items)
		}
		return ErrStockItemNotFound
	})
	if err != nil {
		if errors.Is(err, ErrStockItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update stock item: %w", err)
	}
	return &updated, nil
}

func (s *inventoryService) DeleteItem(id int64) error {
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		items, err := s.inventoryRepo.ListItems(tx)
		if err != nil {
			return err
		}
		kept := make([]models.StockItem, 0, len(items))
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(items) {
			return ErrStockItemNotFound
		}
		return s.inventoryRepo.SaveItems(tx, kept)
	})
	if err != nil {
		if errors.Is(err, ErrStockItemNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete stock item: %w", err)
	}
	utils.LogInfo("Stock item deleted", map[string]interface{}{"stock_id": id})
	return nil
}

// RecordUsage takes amount off the item, never below zero, and books the
// full amount as an expense at today's price.
func (s *inventoryService) RecordUsage(id int64, amount decimal.Decimal) (*models.ExpenseRecord, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var expense models.ExpenseRecord
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		items, err := s.inventoryRepo.ListItems(tx)
		if err != nil {
			return err
		}
		idx := -1
		for i := range items {
			if items[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrStockItemNotFound
		}

		item := items[idx]
		remaining := item.Quantity.Sub(amount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		items[idx].Quantity = remaining

		expenses, err := s.inventoryRepo.ListExpenses(tx)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(expenses))
		for _, e := range expenses {
			ids = append(ids, e.ID)
		}
		now := s.now()
		expense = models.ExpenseRecord{
			ID:       utils.NextID(now, ids),
			ItemID:   item.ID,
			ItemName: item.Name,
			Category: item.Category,
			Amount:   amount,
			Unit:     item.Unit,
			Cost:     amount.Mul(item.Price),
			Date:     now.UTC().Format(expenseDateLayout),
		}

		if err := s.inventoryRepo.SaveItems(tx, items); err != nil {
			return err
		}
		return s.inventoryRepo.AppendExpense(tx, expense)
	})
	if err != nil {
		if errors.Is(err, ErrStockItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record usage: %w", err)
	}

	metrics.StockUsageCost.WithLabelValues(expense.Category).Add(expense.Cost.InexactFloat64())
	utils.LogInfo("Stock usage recorded", map[string]interface{}{
		"stock_id": id, "amount": expense.Amount.String(), "cost": models.Display(expense.Cost),
	})
	return &expense, nil
}

func (s *inventoryService) ListExpenses() ([]models.ExpenseRecord, error) {
	expenses, err := s.inventoryRepo.ListExpenses(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return expenses, nil
}
