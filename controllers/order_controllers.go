package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type placeOrderRequest struct {
	OrderID              uint     `json:"order_id" binding:"required"`
	ItemName             string   `json:"item_name" binding:"required"`
	Quantity             *int     `json:"quantity"`
	SpecialInstructions  string   `json:"special_instructions"`
	IngredientsToExclude []string `json:"ingredients_to_exclude"`
}

// PlaceOrder adds an item to an order. The outcome, including stock
// refusals and skipped exclusions, is reported in the response message.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	message, err := oc.Orders.PlaceOrder(req.OrderID, req.ItemName, quantity, req.SpecialInstructions, req.IngredientsToExclude)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, message, nil)
}

// CancelOrderItem cancels a pending order item.
func (oc *OrderController) CancelOrderItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item_id"))
		return
	}

	message, err := oc.Orders.CancelOrderItem(uint(itemID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, message, nil)
}

type updateQuantityRequest struct {
	// Pointer so that an explicit 0 (cancel) passes required validation.
	NewQuantity *int `json:"new_quantity" binding:"required"`
}

// UpdateOrderItemQuantity changes a pending item's quantity, or places a
// replacement item when the original is already in the kitchen.
func (oc *OrderController) UpdateOrderItemQuantity(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item_id"))
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	message, err := oc.Orders.UpdateOrderItemQuantity(uint(itemID), *req.NewQuantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, message, nil)
}
