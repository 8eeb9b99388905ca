package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatusPending is the only status an order is ever stored with.
// Completion removes the order from the active collection instead of
// changing its status.
const OrderStatusPending = "pending"

// CartLine is a menu item copied by value when it was rung up.
// A cart has no quantities; two cokes are two lines.
type CartLine struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewCartLine copies a catalog item into a cart line.
func NewCartLine(item MenuItem) CartLine {
	return CartLine{ID: item.ID, Name: item.Name, Price: item.Price}
}

// OrderNumber is the human order number typed on the register. It is free
// text and not unique. Stored data may carry it as a JSON number.
type OrderNumber string

// UnmarshalJSON accepts both "101" and 101.
func (n *OrderNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = OrderNumber(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("order number: %w", err)
	}
	*n = OrderNumber(num.String())
	return nil
}

func (n OrderNumber) String() string { return strings.TrimSpace(string(n)) }

// Order is a paid ticket. The same value is appended to the active orders
// (kitchen) and to the sales history (reports).
type Order struct {
	Ref       string          `json:"ref,omitempty"`
	ID        OrderNumber     `json:"id"`
	Items     []CartLine      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Timestamp int64           `json:"timestamp"`
	Status    string          `json:"status"`
	Server    string          `json:"server"`
}

// Totals are the running figures of a cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// TotalsDisplay is Totals rounded for the screen.
type TotalsDisplay struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// Display rounds the totals to two decimals.
func (t Totals) Display() TotalsDisplay {
	return TotalsDisplay{Subtotal: Display(t.Subtotal), Tax: Display(t.Tax), Total: Display(t.Total)}
}

// CartView is what the register screen renders.
type CartView struct {
	Server      string        `json:"server"`
	OrderNumber string        `json:"order_number"`
	Lines       []CartLine    `json:"lines"`
	ItemCount   int           `json:"item_count"`
	Totals      Totals        `json:"totals"`
	Display     TotalsDisplay `json:"display"`
	Currency    string        `json:"currency"`
	TaxRate     string        `json:"tax_rate"`
}

// TicketLine is one grouped row on a kitchen ticket.
type TicketLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"qty"`
}

// KitchenTicket is an active order as the kitchen sees it.
type KitchenTicket struct {
	Ref            string       `json:"ref,omitempty"`
	OrderID        string       `json:"order_id"`
	Server         string       `json:"server"`
	Timestamp      int64        `json:"timestamp"`
	ElapsedMinutes int64        `json:"elapsed_minutes"`
	Late           bool         `json:"late"`
	Lines          []TicketLine `json:"lines"`
}
