package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"portside_pos_backend/internal/middleware"
	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler is the register: menu, cart and checkout.
type OrderHandler struct {
	registerService services.RegisterService
	board           *services.KitchenBoard
}

// NewOrderHandler creates a new OrderHandler. board may be nil.
func NewOrderHandler(rs services.RegisterService, board *services.KitchenBoard) *OrderHandler {
	return &OrderHandler{registerService: rs, board: board}
}

// GetMenu returns the catalog in tab order.
func (h *OrderHandler) GetMenu(c *gin.Context) {
	catalog, err := h.registerService.Menu()
	if err != nil {
		utils.LogError(err, "GetMenu: Error from registerService.Menu")
		utils.RespondInternal(c, "Failed to fetch menu.")
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// GetCart returns the signed-in user's cart.
func (h *OrderHandler) GetCart(c *gin.Context) {
	view, err := h.registerService.Cart(middleware.CurrentSession(c))
	if err != nil {
		utils.LogError(err, "GetCart: Error from registerService.Cart")
		utils.RespondInternal(c, "Failed to fetch cart.")
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddCartLine rings up one item.
func (h *OrderHandler) AddCartLine(c *gin.Context) {
	var req services.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	view, err := h.registerService.AddLine(middleware.CurrentSession(c), *req.ItemID)
	if err != nil {
		utils.LogError(err, "AddCartLine: Error from registerService.AddLine")
		utils.RespondInternal(c, "Failed to add item.")
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveCartLine removes the line at :index.
func (h *OrderHandler) RemoveCartLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid line index.", err.Error()))
		return
	}
	view, err := h.registerService.RemoveLine(middleware.CurrentSession(c), index)
	if err != nil {
		utils.LogError(err, "RemoveCartLine: Error from registerService.RemoveLine")
		utils.RespondInternal(c, "Failed to remove item.")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClearCart empties the cart.
func (h *OrderHandler) ClearCart(c *gin.Context) {
	view, err := h.registerService.ClearCart(middleware.CurrentSession(c))
	if err != nil {
		utils.LogError(err, "ClearCart: Error from registerService.ClearCart")
		utils.RespondInternal(c, "Failed to clear cart.")
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetOrderNumber overrides the next order number.
func (h *OrderHandler) SetOrderNumber(c *gin.Context) {
	var req services.OrderNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	view, err := h.registerService.SetOrderNumber(middleware.CurrentSession(c), req.OrderNumber)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "SetOrderNumber: Error from registerService.SetOrderNumber")
		utils.RespondInternal(c, "Failed to set order number.")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Checkout pays the cart and sends it to the kitchen.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
			return
		}
	}

	order, err := h.registerService.Checkout(middleware.CurrentSession(c), req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Order is empty!", err.Error()))
			return
		}
		utils.LogError(err, "Checkout: Error from registerService.Checkout")
		utils.RespondInternal(c, "Failed to send order.")
		return
	}
	utils.SetLogField(c, "order_ref", order.Ref)
	utils.SetLogField(c, "order_id", order.ID.String())
	if h.board != nil {
		h.board.Refresh()
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order sent to kitchen!", "order": order})
}
