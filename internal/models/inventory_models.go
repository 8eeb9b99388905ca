package models

import "github.com/shopspring/decimal"

// Stock units.
const (
	UnitKilogram = "kg"
	UnitPieces   = "pcs"
)

// DefaultStockThreshold applies to items created without one.
var DefaultStockThreshold = decimal.NewFromInt(5)

// StockItem is an ingredient or supply kept in the store room.
type StockItem struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Threshold decimal.Decimal `json:"threshold"`
}

// IsLow reports whether the item is at or below its threshold.
func (s StockItem) IsLow() bool {
	return s.Quantity.LessThanOrEqual(s.Threshold)
}

// Value is quantity times unit price.
func (s StockItem) Value() decimal.Decimal {
	return s.Quantity.Mul(s.Price)
}

// ExpenseRecord is written every time stock is used up. Its cost is frozen
// at the price of the moment; later price edits do not touch it.
type ExpenseRecord struct {
	ID       int64           `json:"id"`
	ItemID   int64           `json:"itemId"`
	ItemName string          `json:"itemName"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Unit     string          `json:"unit"`
	Cost     decimal.Decimal `json:"cost"`
	Date     string          `json:"date"` // RFC3339
}

// StockRow is a stock item as listed on the inventory screen.
type StockRow struct {
	StockItem
	Low          bool            `json:"low"`
	TotalValue   decimal.Decimal `json:"total_value"`
	ValueDisplay string          `json:"total_value_display"`
}

// StockOverview is the inventory screen.
type StockOverview struct {
	Items              []StockRow      `json:"items"`
	TotalValue         decimal.Decimal `json:"total_inventory_value"`
	DailyExpenses      decimal.Decimal `json:"daily_expenses"`
	LowStockItemsCount int             `json:"low_stock_items_count"`
}
