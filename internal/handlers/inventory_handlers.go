package handlers

import (
	"errors"
	"net/http"

	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler serves the stock and expense screens.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func stockID(c *gin.Context) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid stock item ID format.", err.Error()))
		return 0, false
	}
	return id, true
}

func respondInventoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrStockItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Stock item not found.", err.Error()))
	case errors.Is(err, services.ErrInvalidAmount):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Please enter a valid amount.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	default:
		utils.LogError(err, fallback)
		utils.RespondInternal(c, fallback)
	}
}

// GetStock lists stock with ?search= and ?category= filters.
func (h *InventoryHandler) GetStock(c *gin.Context) {
	overview, err := h.inventoryService.Overview(c.Query("search"), c.DefaultQuery("category", "all"))
	if err != nil {
		respondInventoryError(c, err, "Failed to fetch stock.")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// CreateStockItem adds a stock item.
func (h *InventoryHandler) CreateStockItem(c *gin.Context) {
	var req services.StockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	item, err := h.inventoryService.CreateItem(req)
	if err != nil {
		respondInventoryError(c, err, "Failed to create stock item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateStockItem edits a stock item.
func (h *InventoryHandler) UpdateStockItem(c *gin.Context) {
	id, ok := stockID(c)
	if !ok {
		return
	}
	var req services.StockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	item, err := h.inventoryService.UpdateItem(id, req)
	if err != nil {
		respondInventoryError(c, err, "Failed to update stock item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteStockItem removes a stock item. Its expenses stay.
func (h *InventoryHandler) DeleteStockItem(c *gin.Context) {
	id, ok := stockID(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteItem(id); err != nil {
		respondInventoryError(c, err, "Failed to delete stock item.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock item deleted successfully"})
}

// RecordUsage takes stock off an item and books the expense.
func (h *InventoryHandler) RecordUsage(c *gin.Context) {
	id, ok := stockID(c)
	if !ok {
		return
	}
	var req services.UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	expense, err := h.inventoryService.RecordUsage(id, req.Amount)
	if err != nil {
		respondInventoryError(c, err, "Failed to record usage.")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// GetExpenses lists the expense ledger.
func (h *InventoryHandler) GetExpenses(c *gin.Context) {
	expenses, err := h.inventoryService.ListExpenses()
	if err != nil {
		respondInventoryError(c, err, "Failed to fetch expenses.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": expenses, "total": len(expenses)})
}
