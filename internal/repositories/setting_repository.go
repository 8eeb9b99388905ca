package repositories

import (
	"portside_pos_backend/internal/models"
)

// SettingRepository covers the single-record collections: register settings
// and the administrator login.
type SettingRepository interface {
	GetSettings(exec CollectionStore) (models.AppSettings, error)
	SaveSettings(exec CollectionStore, settings models.AppSettings) error
	GetAdmin(exec CollectionStore) (models.AdminCredentials, error)
	SaveAdmin(exec CollectionStore, admin models.AdminCredentials) error
}

type settingRepository struct{}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository() SettingRepository {
	return &settingRepository{}
}

func (r *settingRepository) GetSettings(exec CollectionStore) (models.AppSettings, error) {
	settings, err := loadCollection(exec, KeyAppSettings, models.DefaultAppSettings)
	if err != nil {
		return settings, err
	}
	if settings.Currency == "" {
		settings.Currency = models.DefaultAppSettings().Currency
	}
	return settings, nil
}

func (r *settingRepository) SaveSettings(exec CollectionStore, settings models.AppSettings) error {
	return exec.Write(KeyAppSettings, settings)
}

func (r *settingRepository) GetAdmin(exec CollectionStore) (models.AdminCredentials, error) {
	admin, err := loadCollection(exec, KeyAdminConfig, DefaultAdmin)
	if err != nil {
		return admin, err
	}
	if admin.User == "" {
		return DefaultAdmin(), nil
	}
	return admin, nil
}

func (r *settingRepository) SaveAdmin(exec CollectionStore, admin models.AdminCredentials) error {
	return exec.Write(KeyAdminConfig, admin)
}
