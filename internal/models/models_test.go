package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCatalogKeepsCategoryOrder(t *testing.T) {
	raw := `{"starters":[{"id":1,"name":"Garlic Bread","price":6.5}],"mains":[],"drinks":[{"id":21,"name":"Coke","price":3.50}]}`

	var c Catalog
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	names := []string{}
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	if got := names; len(got) != 3 || got[0] != "starters" || got[1] != "mains" || got[2] != "drinks" {
		t.Fatalf("category order = %v", got)
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"starters":[{"id":1,"name":"Garlic Bread","price":6.5}],"mains":[],"drinks":[{"id":21,"name":"Coke","price":3.5}]}`
	if string(out) != want {
		t.Errorf("Marshal() = %s\nwant %s", out, want)
	}
}

func TestCatalogRejectsNonObject(t *testing.T) {
	var c Catalog
	if err := json.Unmarshal([]byte(`[1,2]`), &c); err == nil {
		t.Fatal("expected error for array catalog")
	}
}

func TestOrderNumberAcceptsNumbers(t *testing.T) {
	var o Order
	if err := json.Unmarshal([]byte(`{"id":101,"items":[],"total":7.7,"timestamp":5}`), &o); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if o.ID.String() != "101" {
		t.Errorf("ID = %q, want 101", o.ID)
	}
	if !o.Total.Equal(decimal.RequireFromString("7.7")) {
		t.Errorf("Total = %s", o.Total)
	}
}

func TestStockItemLow(t *testing.T) {
	item := StockItem{Quantity: decimal.NewFromInt(5), Threshold: decimal.NewFromInt(5), Price: decimal.RequireFromString("0.5")}
	if !item.IsLow() {
		t.Error("quantity equal to threshold should be low")
	}
	if got := Display(item.Value()); got != "2.50" {
		t.Errorf("Value() = %s, want 2.50", got)
	}
}
