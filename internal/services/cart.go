package services

import (
	"portside_pos_backend/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Cart is the order being rung up on a register. It is not persisted;
// it only becomes an Order at checkout.
type Cart struct {
	lines []models.CartLine
}

// AddLine appends a copy of the catalog item. Unknown ids are ignored.
func (c *Cart) AddLine(catalog models.Catalog, itemID int64) bool {
	item, ok := catalog.FindItem(itemID)
	if !ok {
		return false
	}
	c.lines = append(c.lines, models.NewCartLine(item))
	return true
}

// RemoveLine deletes the line at index. Out of range is a no-op.
func (c *Cart) RemoveLine(index int) bool {
	if index < 0 || index >= len(c.lines) {
		return false
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len is the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the lines.
func (c *Cart) Lines() []models.CartLine {
	return append([]models.CartLine{}, c.lines...)
}

// ComputeTotals sums the lines and applies the tax rate (a percentage).
// Nothing is rounded here; rounding happens when the figures are displayed.
func ComputeTotals(lines []models.CartLine, taxRatePercent decimal.Decimal) models.Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price)
	}
	tax := subtotal.Mul(taxRatePercent).Div(hundred)
	return models.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
