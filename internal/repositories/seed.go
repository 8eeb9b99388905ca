package repositories

import (
	"time"

	"portside_pos_backend/internal/models"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultCatalog is the menu a fresh install starts with.
func DefaultCatalog() models.Catalog {
	return models.Catalog{Categories: []models.MenuCategory{
		{Name: "starters", Items: []models.MenuItem{
			{ID: 1, Name: "Garlic Bread", Price: price("6.50")},
			{ID: 2, Name: "Calamari", Price: price("12.00")},
			{ID: 3, Name: "Bruschetta", Price: price("9.50")},
			{ID: 4, Name: "Wings (6)", Price: price("10.00")},
		}},
		{Name: "mains", Items: []models.MenuItem{
			{ID: 11, Name: "Portside Burger", Price: price("18.50")},
			{ID: 12, Name: "Ribeye Steak", Price: price("32.00")},
			{ID: 13, Name: "Fish & Chips", Price: price("22.00")},
			{ID: 14, Name: "Caesar Salad", Price: price("14.50")},
			{ID: 15, Name: "Pasta Carbonara", Price: price("19.50")},
		}},
		{Name: "drinks", Items: []models.MenuItem{
			{ID: 21, Name: "Coke", Price: price("3.50")},
			{ID: 22, Name: "Beer (Pint)", Price: price("7.00")},
			{ID: 23, Name: "House Wine", Price: price("8.50")},
			{ID: 24, Name: "Water", Price: price("0.00")},
		}},
	}}
}

// DefaultStaff is the crew of a fresh install. Passcodes are plaintext here
// and get hashed by the bootstrap step before they are written.
func DefaultStaff() []models.StaffMember {
	joined := time.Now().UnixMilli()
	return []models.StaffMember{
		{ID: 1, Name: "John Doe", Username: "john", Role: models.RoleManager, Passcode: "1234", Joined: joined},
		{ID: 2, Name: "Jane Smith", Username: "jane", Role: models.RoleServer, Passcode: "0000", Joined: joined},
	}
}

// DefaultStock is the store room of a fresh install.
func DefaultStock() []models.StockItem {
	return []models.StockItem{
		{ID: 1, Name: "Ribeye Steak", Category: "Meat", Unit: models.UnitKilogram, Quantity: price("15.5"), Price: price("25.00"), Threshold: price("5.0")},
		{ID: 2, Name: "Salmon Fillet", Category: "Seafood", Unit: models.UnitKilogram, Quantity: price("8.2"), Price: price("18.50"), Threshold: price("3.0")},
		{ID: 3, Name: "Burger Buns", Category: "Dry Goods", Unit: models.UnitPieces, Quantity: price("120"), Price: price("0.50"), Threshold: price("20")},
		{ID: 4, Name: "Tomatoes", Category: "Produce", Unit: models.UnitKilogram, Quantity: price("4.5"), Price: price("3.20"), Threshold: price("2.0")},
		{ID: 5, Name: "Coke (Cans)", Category: "Beverages", Unit: models.UnitPieces, Quantity: price("45"), Price: price("0.80"), Threshold: price("10")},
		{ID: 6, Name: "Potatoes", Category: "Produce", Unit: models.UnitKilogram, Quantity: price("25.0"), Price: price("1.50"), Threshold: price("5.0")},
	}
}

// DefaultAdmin is the built-in administrator login (plaintext until bootstrapped).
func DefaultAdmin() models.AdminCredentials {
	return models.AdminCredentials{User: "admin", Pass: "admin123"}
}
