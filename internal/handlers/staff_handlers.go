package handlers

import (
	"errors"
	"net/http"

	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

func respondStaffError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUsernameExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username already exists.", err.Error()))
	case errors.Is(err, services.ErrInvalidRole):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Role must be Manager, Server or Kitchen.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrStaffNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
	default:
		utils.RespondInternal(c, fallback)
	}
}

// CreateStaffMember handles the creation of a new staff member.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateStaffMember: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staffMember, err := h.staffService.Create(req)
	if err != nil {
		utils.LogError(err, "CreateStaffMember: Error from staffService.Create")
		respondStaffError(c, err, "Failed to create staff member.")
		return
	}
	c.JSON(http.StatusCreated, staffMember)
}

// GetStaffMembers lists staff, optionally filtered by name.
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	staffMembers, err := h.staffService.List(c.Query("search"))
	if err != nil {
		utils.LogError(err, "GetStaffMembers: Error from staffService.List")
		utils.RespondInternal(c, "Failed to fetch staff members.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": staffMembers, "total": len(staffMembers)})
}

// DeleteStaffMember handles deleting a staff member.
func (h *StaffHandler) DeleteStaffMember(c *gin.Context) {
	idStr := c.Param("id")
	staffID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff member ID format.", err.Error()))
		return
	}

	if err := h.staffService.Delete(staffID); err != nil {
		utils.LogError(err, "DeleteStaffMember: Error from staffService.Delete for ID "+idStr)
		respondStaffError(c, err, "Failed to delete staff member.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
