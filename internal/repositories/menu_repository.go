package repositories

import (
	"portside_pos_backend/internal/models"
)

// MenuRepository reads and writes the menu catalog.
type MenuRepository interface {
	GetCatalog(exec CollectionStore) (models.Catalog, error)
	SaveCatalog(exec CollectionStore, catalog models.Catalog) error
}

type menuRepository struct{}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository() MenuRepository {
	return &menuRepository{}
}

func (r *menuRepository) GetCatalog(exec CollectionStore) (models.Catalog, error) {
	return loadCollection(exec, KeyMenu, DefaultCatalog)
}

func (r *menuRepository) SaveCatalog(exec CollectionStore, catalog models.Catalog) error {
	return exec.Write(KeyMenu, catalog)
}
