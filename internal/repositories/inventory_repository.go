package repositories

import (
	"portside_pos_backend/internal/models"
)

// InventoryRepository covers the stock items and the expense ledger.
type InventoryRepository interface {
	ListItems(exec CollectionStore) ([]models.StockItem, error)
	SaveItems(exec CollectionStore, items []models.StockItem) error

	ListExpenses(exec CollectionStore) ([]models.ExpenseRecord, error)
	AppendExpense(exec CollectionStore, expense models.ExpenseRecord) error
}

type inventoryRepository struct{}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository() InventoryRepository {
	return &inventoryRepository{}
}

func emptyExpenses() []models.ExpenseRecord { return []models.ExpenseRecord{} }

func (r *inventoryRepository) ListItems(exec CollectionStore) ([]models.StockItem, error) {
	return loadCollection(exec, KeyInventory, DefaultStock)
}

func (r *inventoryRepository) SaveItems(exec CollectionStore, items []models.StockItem) error {
	if items == nil {
		items = []models.StockItem{}
	}
	return exec.Write(KeyInventory, items)
}

func (r *inventoryRepository) ListExpenses(exec CollectionStore) ([]models.ExpenseRecord, error) {
	return loadCollection(exec, KeyExpenses, emptyExpenses)
}

func (r *inventoryRepository) AppendExpense(exec CollectionStore, expense models.ExpenseRecord) error {
	expenses, err := r.ListExpenses(exec)
	if err != nil {
		return err
	}
	return exec.Write(KeyExpenses, append(expenses, expense))
}
