package services

import (
	"fmt"
	"strings"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest changes the register settings.
type UpdateSettingsRequest struct {
	Tax      decimal.Decimal `json:"tax"`
	Currency string          `json:"currency" binding:"required"`
}

// SettingService reads and writes the register settings.
type SettingService interface {
	Get() (*models.AppSettings, error)
	Update(req UpdateSettingsRequest) (*models.AppSettings, error)
}

type settingService struct {
	store       repositories.CollectionStore
	settingRepo repositories.SettingRepository
}

// NewSettingService creates a new instance of SettingService.
func NewSettingService(store repositories.CollectionStore, sr repositories.SettingRepository) SettingService {
	return &settingService{store: store, settingRepo: sr}
}

func (s *settingService) Get() (*models.AppSettings, error) {
	settings, err := s.settingRepo.GetSettings(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}

func (s *settingService) Update(req UpdateSettingsRequest) (*models.AppSettings, error) {
	if req.Tax.IsNegative() {
		return nil, fmt.Errorf("%w: tax cannot be negative", ErrValidation)
	}
	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrValidation)
	}
	settings := models.AppSettings{Tax: req.Tax, Currency: currency}
	if err := s.settingRepo.SaveSettings(s.store, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	utils.LogInfo("Settings updated", map[string]interface{}{"tax": settings.Tax.String(), "currency": settings.Currency})
	return &settings, nil
}
