package services

import (
	"testing"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

func TestComputeTotals(t *testing.T) {
	coke := models.CartLine{ID: 21, Name: "Coke", Price: dec("3.50")}
	tests := []struct {
		name  string
		lines []models.CartLine
		rate  decimal.Decimal
		want  models.TotalsDisplay
	}{
		{"empty", nil, dec("10"), models.TotalsDisplay{Subtotal: "0.00", Tax: "0.00", Total: "0.00"}},
		{"two cokes", []models.CartLine{coke, coke}, dec("10"), models.TotalsDisplay{Subtotal: "7.00", Tax: "0.70", Total: "7.70"}},
		{"zero tax", []models.CartLine{coke}, decimal.Zero, models.TotalsDisplay{Subtotal: "3.50", Tax: "0.00", Total: "3.50"}},
		{"fractional rate", []models.CartLine{coke}, dec("12.5"), models.TotalsDisplay{Subtotal: "3.50", Tax: "0.44", Total: "3.94"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, tt.rate).Display()
			if got != tt.want {
				t.Errorf("ComputeTotals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeTotalsKeepsPrecision(t *testing.T) {
	lines := []models.CartLine{{Price: dec("0.333")}, {Price: dec("0.333")}}
	got := ComputeTotals(lines, dec("10"))
	if !got.Total.Equal(got.Subtotal.Add(got.Tax)) {
		t.Fatalf("total %s != subtotal %s + tax %s", got.Total, got.Subtotal, got.Tax)
	}
	if got.Subtotal.String() != "0.666" {
		t.Errorf("subtotal rounded early: %s", got.Subtotal)
	}
}

func TestCartAddAndRemove(t *testing.T) {
	catalog := repositories.DefaultCatalog()
	var cart Cart

	if !cart.AddLine(catalog, 21) || !cart.AddLine(catalog, 21) {
		t.Fatal("AddLine() rejected a menu item")
	}
	if cart.AddLine(catalog, 9999) {
		t.Error("AddLine() accepted an unknown item")
	}
	if cart.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cart.Len())
	}
	if cart.RemoveLine(5) {
		t.Error("RemoveLine() out of range should be a no-op")
	}
	if !cart.RemoveLine(0) || cart.Len() != 1 {
		t.Fatalf("RemoveLine(0) left %d lines", cart.Len())
	}
	cart.Clear()
	if cart.Len() != 0 {
		t.Error("Clear() left lines behind")
	}
}
