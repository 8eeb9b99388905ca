package handlers

import (
	"errors"
	"net/http"

	"portside_pos_backend/internal/middleware"
	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Register handles staff self sign-up.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Register: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	profile, err := h.authService.Register(req)
	if err != nil {
		utils.LogError(err, "Register: Error from authService.Register")
		respondStaffError(c, err, "Failed to register.")
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogWarn(nil, "Login rejected", map[string]interface{}{"username": req.Username})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", ""))
			return
		}
		utils.LogError(err, "Login: Error from authService.Login")
		utils.RespondInternal(c, "Failed to login.")
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// Logout acknowledges a sign out. Tokens are stateless; the client drops it.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me returns the signed-in user and where they land.
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{"user": session, "landing": session.LandingScreen()})
}

// ChangeAdminCredentials replaces the administrator login.
func (h *AuthHandler) ChangeAdminCredentials(c *gin.Context) {
	var req services.AdminCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	if err := h.authService.ChangeAdminCredentials(req); err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "ChangeAdminCredentials: Error from authService.ChangeAdminCredentials")
		utils.RespondInternal(c, "Failed to change admin credentials.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin credentials updated"})
}
