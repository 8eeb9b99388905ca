package handlers

import (
	"errors"
	"io"
	"net/http"

	"portside_pos_backend/internal/services"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// KitchenHandler serves the kitchen display.
type KitchenHandler struct {
	kitchenService services.KitchenService
	board          *services.KitchenBoard
}

// NewKitchenHandler creates a new KitchenHandler. board may be nil, in which
// case the stream endpoint is unavailable.
func NewKitchenHandler(ks services.KitchenService, board *services.KitchenBoard) *KitchenHandler {
	return &KitchenHandler{kitchenService: ks, board: board}
}

// GetTickets returns the active orders as tickets, oldest first.
func (h *KitchenHandler) GetTickets(c *gin.Context) {
	tickets, err := h.kitchenService.Tickets()
	if err != nil {
		utils.LogError(err, "GetTickets: Error from kitchenService.Tickets")
		utils.RespondInternal(c, "Failed to fetch kitchen tickets.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets, "count": len(tickets)})
}

// Stream pushes board snapshots as server-sent events until the client leaves.
func (h *KitchenHandler) Stream(c *gin.Context) {
	if h.board == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeInternalServerError, "Kitchen stream is not running.", ""))
		return
	}
	snapshots, unsubscribe := h.board.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("board", snap)
			return true
		}
	})
}

// CompleteByRef marks one order done.
func (h *KitchenHandler) CompleteByRef(c *gin.Context) {
	utils.SetLogField(c, "order_ref", c.Param("ref"))
	order, err := h.kitchenService.CompleteByRef(c.Param("ref"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found or already completed.", err.Error()))
			return
		}
		utils.LogError(err, "CompleteByRef: Error from kitchenService.CompleteByRef")
		utils.RespondInternal(c, "Failed to complete order.")
		return
	}
	h.refresh()
	c.JSON(http.StatusOK, gin.H{"message": "Order completed", "order": order})
}

// CompleteByTimestamp removes every active order with the given timestamp.
func (h *KitchenHandler) CompleteByTimestamp(c *gin.Context) {
	ts, err := utils.StrToInt64(c.Query("timestamp"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "timestamp query parameter must be a number.", err.Error()))
		return
	}
	removed, err := h.kitchenService.CompleteByTimestamp(ts)
	if err != nil {
		utils.LogError(err, "CompleteByTimestamp: Error from kitchenService.CompleteByTimestamp")
		utils.RespondInternal(c, "Failed to complete order.")
		return
	}
	h.refresh()
	c.JSON(http.StatusOK, gin.H{"message": "Order completed", "removed": removed})
}

func (h *KitchenHandler) refresh() {
	if h.board != nil {
		h.board.Refresh()
	}
}
