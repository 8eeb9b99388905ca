package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MenuItem is a sellable dish or drink.
type MenuItem struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// MenuCategory is a named, ordered group of menu items.
type MenuCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// Catalog is the whole menu. It is stored as a JSON object
// (category -> items) whose key order is the tab order on the register,
// so it keeps its own ordering instead of relying on a Go map.
type Catalog struct {
	Categories []MenuCategory
}

// CatalogEntry is a flattened menu row used by the menu editor.
type CatalogEntry struct {
	MenuItem
	Category string `json:"category"`
}

// Category returns the category with the given name.
func (c *Catalog) Category(name string) (*MenuCategory, bool) {
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// FindItem looks an item up across all categories. When the same id appears
// in several categories the last one wins, as on the original register.
func (c *Catalog) FindItem(id int64) (MenuItem, bool) {
	var (
		found MenuItem
		ok    bool
	)
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			if item.ID == id {
				found, ok = item, true
			}
		}
	}
	return found, ok
}

// Entries flattens the catalog in tab order.
func (c *Catalog) Entries() []CatalogEntry {
	entries := []CatalogEntry{}
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			entries = append(entries, CatalogEntry{MenuItem: item, Category: cat.Name})
		}
	}
	return entries
}

// ItemIDs lists every id in the catalog.
func (c *Catalog) ItemIDs() []int64 {
	var ids []int64
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Clone returns a deep copy safe to mutate.
func (c Catalog) Clone() Catalog {
	out := Catalog{Categories: make([]MenuCategory, len(c.Categories))}
	for i, cat := range c.Categories {
		out.Categories[i] = MenuCategory{Name: cat.Name, Items: append([]MenuItem{}, cat.Items...)}
	}
	return out
}

// MarshalJSON writes the catalog as an object preserving category order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		items := cat.Items
		if items == nil {
			items = []MenuItem{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a category -> items object keeping the key order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}

	categories := []MenuCategory{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected category name, got %v", tok)
		}
		var items []MenuItem
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("catalog: category %q: %w", name, err)
		}
		if items == nil {
			items = []MenuItem{}
		}
		categories = append(categories, MenuCategory{Name: name, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	c.Categories = categories
	return nil
}
