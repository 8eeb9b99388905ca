package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// MenuItemRequest creates or edits a menu item.
type MenuItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category" binding:"required"`
}

// CategoryRequest adds a menu tab.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// MenuService is the menu editor.
type MenuService interface {
	Categories() ([]string, error)
	AddCategory(name string) (string, error)
	Items(search, category string) ([]models.CatalogEntry, error)
	CreateItem(req MenuItemRequest) (*models.CatalogEntry, error)
	UpdateItem(id int64, req MenuItemRequest) (*models.CatalogEntry, error)
	DeleteItem(category string, id int64) error
}

type menuService struct {
	store    repositories.CollectionStore
	menuRepo repositories.MenuRepository
	now      func() time.Time
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(store repositories.CollectionStore, mr repositories.MenuRepository) MenuService {
	return &menuService{store: store, menuRepo: mr, now: time.Now}
}

func (s *menuService) Categories() ([]string, error) {
	catalog, err := s.menuRepo.GetCatalog(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	names := make([]string, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		names = append(names, c.Name)
	}
	return names, nil
}

// categoryKey is the stored form of a menu tab name.
func categoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddCategory stores the name lower-cased and trimmed.
func (s *menuService) AddCategory(name string) (string, error) {
	name = categoryKey(name)
	if name == "" {
		return "", fmt.Errorf("%w: category name is required", ErrValidation)
	}
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		catalog, err := s.menuRepo.GetCatalog(tx)
		if err != nil {
			return err
		}
		if _, exists := catalog.Category(name); exists {
			return ErrCategoryExists
		}
		catalog.Categories = append(catalog.Categories, models.MenuCategory{Name: name, Items: []models.MenuItem{}})
		return s.menuRepo.SaveCatalog(tx, catalog)
	})
	if err != nil {
		if errors.Is(err, ErrCategoryExists) {
			return "", err
		}
		return "", fmt.Errorf("failed to add category: %w", err)
	}
	utils.LogInfo("Menu category added", map[string]interface{}{"category": name})
	return name, nil
}

func (s *menuService) Items(search, category string) ([]models.CatalogEntry, error) {
	catalog, err := s.menuRepo.GetCatalog(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	search = strings.TrimSpace(search)
	category = categoryKey(category)

	entries := []models.CatalogEntry{}
	for _, e := range catalog.Entries() {
		if search != "" && !utils.ContainsFold(e.Name, search) {
			continue
		}
		if category != "" && category != categoryAll && e.Category != category {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func validateMenuRequest(req MenuItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}

func (s *menuService) CreateItem(req MenuItemRequest) (*models.CatalogEntry, error) {
	return s.upsert(0, false, req)
}

// UpdateItem removes the id from every category and puts the edited item
// at the end of the target category.
func (s *menuService) UpdateItem(id int64, req MenuItemRequest) (*models.CatalogEntry, error) {
	return s.upsert(id, true, req)
}

func (s *menuService) upsert(id int64, edit bool, req MenuItemRequest) (*models.CatalogEntry, error) {
	if err := validateMenuRequest(req); err != nil {
		return nil, err
	}
	req.Category = categoryKey(req.Category)

	var entry models.CatalogEntry
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		catalog, err := s.menuRepo.GetCatalog(tx)
		if err != nil {
			return err
		}
		catalog = catalog.Clone()

		if _, ok := catalog.Category(req.Category); !ok {
			return ErrCategoryNotFound
		}
		if edit {
			if _, ok := catalog.FindItem(id); !ok {
				return ErrMenuItemNotFound
			}
			for i := range catalog.Categories {
				items := catalog.Categories[i].Items[:0]
				for _, item := range catalog.Categories[i].Items {
					if item.ID != id {
						items = append(items, item)
					}
				}
				catalog.Categories[i].Items = items
			}
		} else {
			id = utils.NextID(s.now(), catalog.ItemIDs())
		}

		item := models.MenuItem{ID: id, Name: strings.TrimSpace(req.Name), Price: req.Price}
		target, _ := catalog.Category(req.Category)
		target.Items = append(target.Items, item)
		entry = models.CatalogEntry{MenuItem: item, Category: req.Category}
		return s.menuRepo.SaveCatalog(tx, catalog)
	})
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) || errors.Is(err, ErrMenuItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save menu item: %w", err)
	}
	utils.LogInfo("Menu item saved", map[string]interface{}{"item_id": entry.ID, "category": entry.Category})
	return &entry, nil
}

func (s *menuService) DeleteItem(category string, id int64) error {
	category = categoryKey(category)
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		catalog, err := s.menuRepo.GetCatalog(tx)
		if err != nil {
			return err
		}
		catalog = catalog.Clone()
		cat, ok := catalog.Category(category)
		if !ok {
			return ErrCategoryNotFound
		}
		kept := make([]models.MenuItem, 0, len(cat.Items))
		for _, item := range cat.Items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(cat.Items) {
			return ErrMenuItemNotFound
		}
		cat.Items = kept
		return s.menuRepo.SaveCatalog(tx, catalog)
	})
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) || errors.Is(err, ErrMenuItemNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}
