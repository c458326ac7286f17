package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablemate/waiterd/agent"
	"github.com/tablemate/waiterd/utils"
)

type ChatController struct {
	Agent *agent.Agent
}

func NewChatController(assistant *agent.Agent) *ChatController {
	return &ChatController{Agent: assistant}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	OrderID   uint   `json:"order_id" binding:"required"`
	Customer  string `json:"customer"`
	Message   string `json:"message" binding:"required"`
}

// Chat runs one assistant turn. Omitting session_id starts a new
// conversation; the returned session_id keeps it going.
func (cc *ChatController) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sessionID, reply, err := cc.Agent.Query(c.Request.Context(), req.SessionID, req.OrderID, req.Customer, req.Message)
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assistant reply", gin.H{
		"session_id": sessionID,
		"reply":      reply,
	})
}
