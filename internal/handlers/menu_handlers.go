package handlers

import (
	"errors"
	"net/http"

	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler is the menu editor.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

func respondMenuError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrCategoryExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category already exists!", err.Error()))
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", err.Error()))
	case errors.Is(err, services.ErrMenuItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	default:
		utils.LogError(err, fallback)
		utils.RespondInternal(c, fallback)
	}
}

// GetCategories lists the menu tabs in order.
func (h *MenuHandler) GetCategories(c *gin.Context) {
	categories, err := h.menuService.Categories()
	if err != nil {
		respondMenuError(c, err, "Failed to fetch categories.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// CreateCategory adds a menu tab.
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	name, err := h.menuService.AddCategory(req.Name)
	if err != nil {
		respondMenuError(c, err, "Failed to add category.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": name})
}

// GetItems lists every menu item with its category.
func (h *MenuHandler) GetItems(c *gin.Context) {
	items, err := h.menuService.Items(c.Query("search"), c.DefaultQuery("category", "all"))
	if err != nil {
		respondMenuError(c, err, "Failed to fetch menu items.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": len(items)})
}

// CreateItem adds a menu item.
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req services.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	item, err := h.menuService.CreateItem(req)
	if err != nil {
		respondMenuError(c, err, "Failed to save menu item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem edits a menu item, possibly moving it to another category.
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}
	var req services.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	item, err := h.menuService.UpdateItem(id, req)
	if err != nil {
		respondMenuError(c, err, "Failed to save menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a menu item from one category.
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}
	if err := h.menuService.DeleteItem(c.Param("category"), id); err != nil {
		respondMenuError(c, err, "Failed to delete menu item.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
