package handlers

import (
	"errors"
	"net/http"

	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler serves the register settings.
type SettingHandler struct {
	settingService services.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: ss}
}

// GetSettings retrieves the tax rate and currency.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingService.Get()
	if err != nil {
		utils.LogError(err, "GetSettings: Error from settingService.Get")
		utils.RespondInternal(c, "Failed to fetch settings.")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings changes the tax rate and currency.
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	settings, err := h.settingService.Update(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "UpdateSettings: Error from settingService.Update")
		utils.RespondInternal(c, "Failed to save settings.")
		return
	}
	c.JSON(http.StatusOK, settings)
}
