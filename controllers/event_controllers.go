package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tablemate/waiterd/events"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EventController struct {
	Hub *events.Hub
}

func NewEventController(hub *events.Hub) *EventController {
	return &EventController{Hub: hub}
}

// Feed upgrades the connection to a websocket and streams order events
// until the client disconnects.
func (ec *EventController) Feed(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	ec.Hub.Register(ws)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	ec.Hub.Unregister(ws)
}
