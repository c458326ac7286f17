package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/utils"
)

type ReceiptController struct {
	Receipts *services.ReceiptService
}

func NewReceiptController(receipts *services.ReceiptService) *ReceiptController {
	return &ReceiptController{Receipts: receipts}
}

// GetReceipt returns the itemized receipt for an order. Supports
// ?item_names (repeatable), ?include_paid and ?include_status.
func (rc *ReceiptController) GetReceipt(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order_id"))
		return
	}

	itemNames := c.QueryArray("item_names")
	includePaid, _ := strconv.ParseBool(c.DefaultQuery("include_paid", "false"))
	includeStatus, _ := strconv.ParseBool(c.DefaultQuery("include_status", "false"))

	receipt, err := rc.Receipts.Receipt(uint(orderID), itemNames, includePaid, includeStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order receipt", receipt)
}

type paymentRequest struct {
	ItemNames []string `json:"item_names"`
}

// ProcessPayment marks an order's items as paid. An empty or absent body
// pays every item on the order.
func (rc *ReceiptController) ProcessPayment(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order_id"))
		return
	}

	var req paymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	message, err := rc.Receipts.Payment(uint(orderID), req.ItemNames)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, message, nil)
}
